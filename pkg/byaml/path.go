package byaml

import (
	"iter"
	"math"
	"slices"
)

// PathPoint is one 28-byte point of a path. Position and Normal are in file
// space; use AppPosition and AppNormal for the remapped axes.
type PathPoint struct {
	Position Vector3 `json:"position"`
	Normal   Vector3 `json:"normal"`
	// Unknown has no documented meaning and is carried through verbatim.
	Unknown uint32 `json:"unknown"`
}

// AppPosition returns the position with the (X, -Z, Y) axis remap applied.
func (p PathPoint) AppPosition() Vector3 { return p.Position.ToApp() }

// AppNormal returns the normal with the (X, -Z, Y) axis remap applied.
func (p PathPoint) AppNormal() Vector3 { return p.Normal.ToApp() }

// Path is an ordered list of points.
type Path []PathPoint

// Equal compares two paths point by point, floats by bit pattern.
func (p Path) Equal(o Path) bool {
	return slices.EqualFunc(p, o, func(a, b PathPoint) bool {
		return a.Unknown == b.Unknown && a.Position.bitsEqual(b.Position) && a.Normal.bitsEqual(b.Normal)
	})
}

// StringArray is a table of strings. The name and string pools are string
// arrays; one can also appear as an ordinary node.
type StringArray struct {
	Items []string
}

func (s *StringArray) Type() NodeType { return TypeStringArray }

// Len returns the number of strings; a nil (absent) table has none.
func (s *StringArray) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}
func (s *StringArray) node() {}

// At returns the string at index i.
func (s *StringArray) At(i int) (string, bool) {
	if i < 0 || i >= len(s.Items) {
		return "", false
	}
	return s.Items[i], true
}

// All yields index/string pairs in order.
func (s *StringArray) All() iter.Seq2[int, string] {
	return slices.All(s.Items)
}

// PathArray is a table of paths. The path pool is a path array.
type PathArray struct {
	Paths []Path
}

func (p *PathArray) Type() NodeType { return TypePathArray }

// Len returns the number of paths; a nil (absent) table has none.
func (p *PathArray) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Paths)
}
func (p *PathArray) node() {}

// At returns the path at index i.
func (p *PathArray) At(i int) (Path, bool) {
	if i < 0 || i >= len(p.Paths) {
		return nil, false
	}
	return p.Paths[i], true
}

// All yields index/path pairs in order.
func (p *PathArray) All() iter.Seq2[int, Path] {
	return slices.All(p.Paths)
}

func (v Vector3) bitsEqual(o Vector3) bool {
	return math.Float32bits(v.X) == math.Float32bits(o.X) &&
		math.Float32bits(v.Y) == math.Float32bits(o.Y) &&
		math.Float32bits(v.Z) == math.Float32bits(o.Z)
}
