package byaml

import (
	"iter"
	"math"

	"github.com/joshuapare/byamlkit/internal/format"
)

// NodeType is the one-byte tag of a node (re-exported from internal/format).
type NodeType = format.NodeType

const (
	TypeStringIndex = format.TypeStringIndex
	TypePathIndex   = format.TypePathIndex
	TypeArray       = format.TypeArray
	TypeDictionary  = format.TypeDictionary
	TypeStringArray = format.TypeStringArray
	TypePathArray   = format.TypePathArray
	TypeBoolean     = format.TypeBoolean
	TypeInteger     = format.TypeInteger
	TypeFloat       = format.TypeFloat
)

// Node is one decoded BYAML node. The set of implementations is closed:
// *Array, *Dictionary, *StringArray, *PathArray, String, PathRef, Bool, Int
// and Float.
type Node interface {
	// Type returns the node's tag.
	Type() NodeType
	// Len returns the number of children. Values have none.
	Len() int

	node()
}

// String is a reference into the string pool, held as its resolved value.
type String string

// PathRef is a reference into the path pool, held as its resolved path.
type PathRef struct {
	Path Path
}

// Bool is a boolean stored as a nonzero/zero uint32.
type Bool bool

// Int is a signed 32-bit integer.
type Int int32

// Float is an IEEE-754 single-precision float.
type Float float32

func (String) Type() NodeType  { return TypeStringIndex }
func (PathRef) Type() NodeType { return TypePathIndex }
func (Bool) Type() NodeType    { return TypeBoolean }
func (Int) Type() NodeType     { return TypeInteger }
func (Float) Type() NodeType   { return TypeFloat }

func (String) Len() int  { return 0 }
func (PathRef) Len() int { return 0 }
func (Bool) Len() int    { return 0 }
func (Int) Len() int     { return 0 }
func (Float) Len() int   { return 0 }

func (String) node()  {}
func (PathRef) node() {}
func (Bool) node()    {}
func (Int) node()     {}
func (Float) node()   {}

// Children yields the child nodes of n in file order. String and path
// arrays yield String and PathRef nodes. Values yield nothing.
func Children(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		switch n := n.(type) {
		case *Array:
			for _, c := range n.All() {
				if !yield(c) {
					return
				}
			}
		case *Dictionary:
			for _, c := range n.All() {
				if !yield(c) {
					return
				}
			}
		case *StringArray:
			if n == nil {
				return
			}
			for _, s := range n.Items {
				if !yield(String(s)) {
					return
				}
			}
		case *PathArray:
			if n == nil {
				return
			}
			for _, p := range n.Paths {
				if !yield(PathRef{Path: p}) {
					return
				}
			}
		}
	}
}

// Value converts n into plain Go values: string, Path, bool, int32, float32,
// []any, map[string]any, []string or []Path. A nil node yields nil.
// Dictionary order is lost; use the *Dictionary itself when order matters.
func Value(n Node) any {
	switch n := orEmpty(n).(type) {
	case String:
		return string(n)
	case PathRef:
		return n.Path
	case Bool:
		return bool(n)
	case Int:
		return int32(n)
	case Float:
		return float32(n)
	case *Array:
		out := make([]any, len(n.Items))
		for i, c := range n.Items {
			out[i] = Value(c)
		}
		return out
	case *Dictionary:
		out := make(map[string]any, n.Len())
		for k, c := range n.All() {
			out[k] = Value(c)
		}
		return out
	case *StringArray:
		return n.Items
	case *PathArray:
		return n.Paths
	default:
		return nil
	}
}

// Equal reports whether a and b are structurally equal: same types, same
// order, same scalar values. Floats compare by bit pattern so NaN payloads
// and signed zeros survive a round trip check.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	a, b = orEmpty(a), orEmpty(b)
	switch a := a.(type) {
	case String:
		bb, ok := b.(String)
		return ok && a == bb
	case Bool:
		bb, ok := b.(Bool)
		return ok && a == bb
	case Int:
		bb, ok := b.(Int)
		return ok && a == bb
	case Float:
		bb, ok := b.(Float)
		return ok && math.Float32bits(float32(a)) == math.Float32bits(float32(bb))
	case PathRef:
		bb, ok := b.(PathRef)
		return ok && a.Path.Equal(bb.Path)
	case *Array:
		bb, ok := b.(*Array)
		if !ok || len(a.Items) != len(bb.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], bb.Items[i]) {
				return false
			}
		}
		return true
	case *Dictionary:
		bb, ok := b.(*Dictionary)
		if !ok || a.Len() != bb.Len() {
			return false
		}
		for i, k := range a.keys {
			if bb.keys[i] != k || !Equal(a.items[k], bb.items[k]) {
				return false
			}
		}
		return true
	case *StringArray:
		bb, ok := b.(*StringArray)
		if !ok || len(a.Items) != len(bb.Items) {
			return false
		}
		for i := range a.Items {
			if a.Items[i] != bb.Items[i] {
				return false
			}
		}
		return true
	case *PathArray:
		bb, ok := b.(*PathArray)
		if !ok || len(a.Paths) != len(bb.Paths) {
			return false
		}
		for i := range a.Paths {
			if !a.Paths[i].Equal(bb.Paths[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// orEmpty replaces a typed-nil container with an empty one of the same type.
func orEmpty(n Node) Node {
	switch c := n.(type) {
	case *Array:
		if c == nil {
			return &Array{}
		}
	case *Dictionary:
		if c == nil {
			return &Dictionary{}
		}
	case *StringArray:
		if c == nil {
			return &StringArray{}
		}
	case *PathArray:
		if c == nil {
			return &PathArray{}
		}
	}
	return n
}
