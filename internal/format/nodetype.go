package format

import "fmt"

// NodeType is the one-byte tag identifying a node kind.
type NodeType uint8

const (
	TypeStringIndex NodeType = 0xA0
	TypePathIndex   NodeType = 0xA1
	TypeArray       NodeType = 0xC0
	TypeDictionary  NodeType = 0xC1
	TypeStringArray NodeType = 0xC2
	TypePathArray   NodeType = 0xC3
	TypeBoolean     NodeType = 0xD0
	TypeInteger     NodeType = 0xD1
	TypeFloat       NodeType = 0xD2
)

// String implements the Stringer interface for NodeType.
func (t NodeType) String() string {
	switch t {
	case TypeStringIndex:
		return "StringIndex"
	case TypePathIndex:
		return "PathIndex"
	case TypeArray:
		return "Array"
	case TypeDictionary:
		return "Dictionary"
	case TypeStringArray:
		return "StringArray"
	case TypePathArray:
		return "PathArray"
	case TypeBoolean:
		return "Boolean"
	case TypeInteger:
		return "Integer"
	case TypeFloat:
		return "Float"
	default:
		return fmt.Sprintf("NodeType(0x%02X)", uint8(t))
	}
}

// IsContainer reports whether nodes of this type live at their own offset
// and are referenced from parent slots by a 4-byte pointer.
func (t NodeType) IsContainer() bool {
	return t >= TypeArray && t <= TypePathArray
}

// IsValue reports whether nodes of this type carry their 4-byte payload
// directly in the parent slot.
func (t NodeType) IsValue() bool {
	switch t {
	case TypeStringIndex, TypePathIndex, TypeBoolean, TypeInteger, TypeFloat:
		return true
	}
	return false
}

// Valid reports whether t is a known tag.
func (t NodeType) Valid() bool {
	return t.IsContainer() || t.IsValue()
}
