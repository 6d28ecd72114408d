package yamltext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/byamlkit/pkg/byaml"
	"github.com/joshuapare/byamlkit/pkg/types"
)

// Unmarshal parses a YAML document into a BYAML tree. Untagged scalars take
// their plain YAML type: ints become Int, floats Float, booleans Bool and
// everything else String. Empty input and a null document yield a nil root.
func Unmarshal(data []byte) (byaml.Node, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one YAML document from r and converts it like Unmarshal.
func Decode(r io.Reader) (byaml.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("yaml: %w", err)
	}
	n := &doc
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = n.Content[0]
	}
	if n.Kind == yaml.ScalarNode && n.ShortTag() == tagNull {
		return nil, nil
	}
	return fromNode(n, 0)
}

func fromNode(n *yaml.Node, depth int) (byaml.Node, error) {
	if depth > types.MaxDepthDeep {
		return nil, types.Errorf(types.ErrKindCorrupt, "line %d: nested deeper than %d", n.Line, types.MaxDepthDeep)
	}
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(n.Alias, depth+1)
	case yaml.MappingNode:
		return fromMapping(n, depth)
	case yaml.SequenceNode:
		switch n.Tag {
		case TagPath:
			p, err := parsePath(n)
			if err != nil {
				return nil, err
			}
			return byaml.PathRef{Path: p}, nil
		case TagStrings:
			return parseStrings(n)
		case TagPaths:
			paths := make([]byaml.Path, 0, len(n.Content))
			for _, c := range n.Content {
				p, err := parsePath(resolveAlias(c))
				if err != nil {
					return nil, err
				}
				paths = append(paths, p)
			}
			return &byaml.PathArray{Paths: paths}, nil
		}
		a := &byaml.Array{Items: make([]byaml.Node, 0, len(n.Content))}
		for i, c := range n.Content {
			item, err := fromNode(c, depth+1)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			a.Items = append(a.Items, item)
		}
		return a, nil
	case yaml.ScalarNode:
		return parseScalar(n)
	}
	return nil, types.Errorf(types.ErrKindType, "line %d: unexpected YAML node kind %d", n.Line, n.Kind)
}

func fromMapping(n *yaml.Node, depth int) (*byaml.Dictionary, error) {
	d := byaml.NewDictionary()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolveAlias(n.Content[i]), n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, types.Errorf(types.ErrKindType, "line %d: mapping key must be a scalar", k.Line)
		}
		child, err := fromNode(v, depth+1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k.Value, err)
		}
		d.Set(k.Value, child)
	}
	return d, nil
}

func parseScalar(n *yaml.Node) (byaml.Node, error) {
	switch tag := n.ShortTag(); tag {
	case tagStr:
		return byaml.String(n.Value), nil
	case tagInt:
		v, err := parseInt(n.Value, 32)
		if err != nil {
			return nil, types.Errorf(types.ErrKindType, "line %d: %q is not a 32-bit integer", n.Line, n.Value)
		}
		return byaml.Int(int32(v)), nil
	case tagFloat:
		f, err := parseFloat(n.Value)
		if err != nil {
			return nil, types.Errorf(types.ErrKindType, "line %d: %q is not a float", n.Line, n.Value)
		}
		return byaml.Float(f), nil
	case tagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, types.Errorf(types.ErrKindType, "line %d: %q is not a boolean", n.Line, n.Value)
		}
		return byaml.Bool(b), nil
	case tagNull:
		return nil, types.Errorf(types.ErrKindType, "line %d: null has no BYAML type", n.Line)
	default:
		return nil, types.Errorf(types.ErrKindType, "line %d: unsupported tag %s", n.Line, tag)
	}
}

func parseStrings(n *yaml.Node) (*byaml.StringArray, error) {
	items := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		c = resolveAlias(c)
		if c.Kind != yaml.ScalarNode {
			return nil, types.Errorf(types.ErrKindType, "line %d: %s entries must be scalars", c.Line, TagStrings)
		}
		items = append(items, c.Value)
	}
	return &byaml.StringArray{Items: items}, nil
}

func parsePath(n *yaml.Node) (byaml.Path, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, types.Errorf(types.ErrKindType, "line %d: a path is a sequence of points", n.Line)
	}
	p := make(byaml.Path, 0, len(n.Content))
	for _, c := range n.Content {
		pt, err := parsePoint(resolveAlias(c))
		if err != nil {
			return nil, err
		}
		p = append(p, pt)
	}
	return p, nil
}

func parsePoint(n *yaml.Node) (byaml.PathPoint, error) {
	var pt byaml.PathPoint
	if n.Kind != yaml.MappingNode {
		return pt, types.Errorf(types.ErrKindType, "line %d: a path point is a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], resolveAlias(n.Content[i+1])
		var err error
		switch k.Value {
		case keyPosition:
			pt.Position, err = parseVector(v)
		case keyNormal:
			pt.Normal, err = parseVector(v)
		case keyUnknown:
			var u uint64
			if u, err = parseUint(v.Value); err == nil {
				pt.Unknown = uint32(u)
			}
		default:
			return pt, types.Errorf(types.ErrKindType, "line %d: unknown path point key %q", k.Line, k.Value)
		}
		if err != nil {
			return pt, fmt.Errorf("line %d: %s: %w", v.Line, k.Value, err)
		}
	}
	return pt, nil
}

func parseVector(n *yaml.Node) (byaml.Vector3, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 3 {
		return byaml.Vector3{}, types.Errorf(types.ErrKindType, "want a sequence of 3 numbers")
	}
	var c [3]float32
	for i, e := range n.Content {
		f, err := parseFloat(resolveAlias(e).Value)
		if err != nil {
			return byaml.Vector3{}, err
		}
		c[i] = f
	}
	return byaml.Vector3{X: c[0], Y: c[1], Z: c[2]}, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// parseFloat parses directly at 32-bit precision so a value printed by
// formatFloat reads back bit-exact.
func parseFloat(s string) (float32, error) {
	switch strings.ToLower(s) {
	case ".nan":
		return float32(math.NaN()), nil
	case ".inf", "+.inf":
		return float32(math.Inf(1)), nil
	case "-.inf":
		return float32(math.Inf(-1)), nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 32)
	return float32(f), err
}

func parseInt(s string, bits int) (int64, error) {
	return strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 0, bits)
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 0, 32)
}
