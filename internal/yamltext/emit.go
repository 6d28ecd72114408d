package yamltext

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/byamlkit/pkg/byaml"
	"github.com/joshuapare/byamlkit/pkg/types"
)

// Marshal renders root as a YAML document.
func Marshal(root byaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes root to w as a YAML document. A nil root is written as null.
func Encode(w io.Writer, root byaml.Node) error {
	doc := scalar(tagNull, "null")
	if root != nil {
		var err error
		if doc, err = toNode(root, 0); err != nil {
			return err
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(DefaultIndent)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return enc.Close()
}

func toNode(n byaml.Node, depth int) (*yaml.Node, error) {
	if depth > types.MaxDepthDeep {
		return nil, types.Errorf(types.ErrKindCorrupt, "tree nested deeper than %d", types.MaxDepthDeep)
	}
	switch v := n.(type) {
	case *byaml.Dictionary:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
		for k, c := range v.All() {
			cn, err := toNode(c, depth+1)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m.Content = append(m.Content, scalar(tagStr, k), cn)
		}
		return m, nil
	case *byaml.Array:
		s := &yaml.Node{Kind: yaml.SequenceNode, Tag: tagSeq}
		for i, c := range v.Items {
			cn, err := toNode(c, depth+1)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			s.Content = append(s.Content, cn)
		}
		return s, nil
	case *byaml.StringArray:
		s := &yaml.Node{Kind: yaml.SequenceNode, Tag: TagStrings, Style: yaml.FlowStyle}
		for _, str := range v.Items {
			s.Content = append(s.Content, scalar(tagStr, str))
		}
		return s, nil
	case *byaml.PathArray:
		s := &yaml.Node{Kind: yaml.SequenceNode, Tag: TagPaths}
		for _, p := range v.Paths {
			s.Content = append(s.Content, pathNode(p, tagSeq))
		}
		return s, nil
	case byaml.PathRef:
		return pathNode(v.Path, TagPath), nil
	case byaml.String:
		return scalar(tagStr, string(v)), nil
	case byaml.Int:
		return scalar(tagInt, strconv.FormatInt(int64(v), 10)), nil
	case byaml.Float:
		return scalar(tagFloat, formatFloat(float32(v))), nil
	case byaml.Bool:
		return scalar(tagBool, strconv.FormatBool(bool(v))), nil
	case nil:
		return nil, types.Errorf(types.ErrKindType, "nil node")
	default:
		return nil, types.Errorf(types.ErrKindType, "cannot render %T", n)
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// pathNode renders a path as a block sequence of flow-style points.
func pathNode(p byaml.Path, tag string) *yaml.Node {
	s := &yaml.Node{Kind: yaml.SequenceNode, Tag: tag}
	for _, pt := range p {
		s.Content = append(s.Content, &yaml.Node{
			Kind:  yaml.MappingNode,
			Tag:   tagMap,
			Style: yaml.FlowStyle,
			Content: []*yaml.Node{
				scalar(tagStr, keyPosition), vectorNode(pt.Position),
				scalar(tagStr, keyNormal), vectorNode(pt.Normal),
				scalar(tagStr, keyUnknown), scalar(tagInt, strconv.FormatUint(uint64(pt.Unknown), 10)),
			},
		})
	}
	return s
}

func vectorNode(v byaml.Vector3) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Tag:   tagSeq,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			scalar(tagFloat, formatFloat(v.X)),
			scalar(tagFloat, formatFloat(v.Y)),
			scalar(tagFloat, formatFloat(v.Z)),
		},
	}
}

// formatFloat prints the shortest float32 representation, always with a
// fraction or exponent so it reads back as a float and not an int.
func formatFloat(f float32) string {
	switch {
	case math.IsNaN(float64(f)):
		return ".nan"
	case math.IsInf(float64(f), 1):
		return ".inf"
	case math.IsInf(float64(f), -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
