package byaml

import (
	"bytes"
	"encoding/json"
	"math"
)

// MarshalJSON writes f as a JSON number. NaN and the infinities, which JSON
// numbers cannot hold, are written as the strings "NaN", "+Inf" and "-Inf".
func (f Float) MarshalJSON() ([]byte, error) {
	switch v := float64(f); {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(float32(f))
}

// MarshalJSON writes the components with the same NaN and infinity
// handling as Float.
func (v Vector3) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X Float `json:"x"`
		Y Float `json:"y"`
		Z Float `json:"z"`
	}{Float(v.X), Float(v.Y), Float(v.Z)})
}

// MarshalJSON writes the dictionary as a JSON object in key order.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	i := 0
	for k, v := range d.All() {
		if i > 0 {
			b.WriteByte(',')
		}
		i++
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalJSON writes the array as a JSON list.
func (a *Array) MarshalJSON() ([]byte, error) {
	if a.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.Items)
}

// MarshalJSON writes the strings as a JSON list.
func (s *StringArray) MarshalJSON() ([]byte, error) {
	if s.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Items)
}

// MarshalJSON writes the paths as a JSON list of point lists.
func (p *PathArray) MarshalJSON() ([]byte, error) {
	if p.Paths == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.Paths)
}

// MarshalJSON writes the referenced path as a list of points.
func (p PathRef) MarshalJSON() ([]byte, error) {
	if p.Path == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]PathPoint(p.Path))
}
