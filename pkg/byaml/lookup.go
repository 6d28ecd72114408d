package byaml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/byamlkit/pkg/types"
)

// PathSeparator separates the segments accepted by Lookup.
const PathSeparator = "/"

// Lookup walks root along a slash-separated path. Dictionary segments are
// keys; array, string-array and path-array segments are decimal indices.
// An empty path returns root.
//
//	n, err := byaml.Lookup(root, "Obj/3/Translate/X")
func Lookup(root Node, path string) (Node, error) {
	cur := root
	path = strings.Trim(path, PathSeparator)
	if path == "" {
		return cur, nil
	}
	walked := ""
	for seg := range strings.SplitSeq(path, PathSeparator) {
		next, err := child(cur, seg)
		if err != nil {
			if walked == "" {
				return nil, fmt.Errorf("lookup %q: %w", seg, err)
			}
			return nil, fmt.Errorf("lookup %q at %q: %w", seg, walked, err)
		}
		cur = next
		walked += PathSeparator + seg
	}
	return cur, nil
}

func child(n Node, seg string) (Node, error) {
	if d, ok := n.(*Dictionary); ok {
		c, ok := d.Get(seg)
		if !ok {
			return nil, types.ErrNotFound
		}
		return c, nil
	}
	idx, err := strconv.Atoi(seg)
	switch n := n.(type) {
	case *Array:
		if err == nil {
			if c, ok := n.At(idx); ok {
				return c, nil
			}
		}
	case *StringArray:
		if err == nil {
			if s, ok := n.At(idx); ok {
				return String(s), nil
			}
		}
	case *PathArray:
		if err == nil {
			if p, ok := n.At(idx); ok {
				return PathRef{Path: p}, nil
			}
		}
	case nil:
		return nil, types.ErrNotFound
	default:
		return nil, types.Errorf(types.ErrKindType, "%v has no children", n.Type())
	}
	if err != nil {
		return nil, types.Errorf(types.ErrKindNotFound, "%q is not an index", seg)
	}
	return nil, types.Errorf(types.ErrKindNotFound, "index %d out of range", idx)
}

// Get returns the child of n at key, which is a dictionary key or an array
// index in decimal. Missing children report false.
func Get(n Node, key string) (Node, bool) {
	c, err := child(n, key)
	return c, err == nil
}

// GetValue returns the child of n at key converted to T, or def when the
// child is missing or of another type. T is either a node type (Int,
// String, *Dictionary, ...) or a plain Go type produced by Value (int32,
// string, bool, float32, ...).
//
//	laps := byaml.GetValue(course, "LapNumber", byaml.Int(3))
//	name := byaml.GetValue(obj, "UnitIdName", "")
func GetValue[T any](n Node, key string, def T) T {
	c, ok := Get(n, key)
	if !ok {
		return def
	}
	if v, ok := c.(T); ok {
		return v
	}
	if v, ok := Value(c).(T); ok {
		return v
	}
	return def
}
