package byaml

import (
	"fmt"

	"github.com/joshuapare/byamlkit/pkg/types"
)

// Vector3 is a 3D vector of float32 components.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// ToApp converts a file-space vector to application space: (X, -Z, Y).
// The remap is fixed by the format's coordinate convention.
func (v Vector3) ToApp() Vector3 {
	return Vector3{X: v.X, Y: -v.Z, Z: v.Y}
}

// FromApp is the inverse of ToApp: (X, Z, -Y).
func (v Vector3) FromApp() Vector3 {
	return Vector3{X: v.X, Y: v.Z, Z: -v.Y}
}

// Vector3 reads the numeric "X", "Y" and "Z" entries of d and returns them
// remapped to application space as (X, -Z, Y). Integer components are
// accepted and widened.
func (d *Dictionary) Vector3() (Vector3, error) {
	var c [3]float32
	for i, key := range [3]string{"X", "Y", "Z"} {
		n, ok := d.Get(key)
		if !ok {
			return Vector3{}, types.Errorf(types.ErrKindNotFound, "vector: missing key %q", key)
		}
		switch n := n.(type) {
		case Float:
			c[i] = float32(n)
		case Int:
			c[i] = float32(n)
		default:
			return Vector3{}, &types.Error{
				Kind: types.ErrKindType,
				Msg:  fmt.Sprintf("vector: key %q is %v, want Float", key, n.Type()),
			}
		}
	}
	return Vector3{X: c[0], Y: c[1], Z: c[2]}.ToApp(), nil
}

// NewVector3Dictionary converts an application-space vector back to a
// file-space {X, Y, Z} dictionary of floats.
func NewVector3Dictionary(v Vector3) *Dictionary {
	f := v.FromApp()
	d := newDictionaryCap(3)
	d.Set("X", Float(f.X))
	d.Set("Y", Float(f.Y))
	d.Set("Z", Float(f.Z))
	return d
}
