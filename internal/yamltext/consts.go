// Package yamltext converts BYAML trees to and from YAML text.
//
// Dictionaries become mappings in file order, arrays become sequences and
// scalars keep their exact type through explicit tags where the plain YAML
// reading would differ. Nodes with no YAML counterpart carry local tags:
//
//	Route: !path
//	  - {position: [0.0, 1.0, 2.0], normal: [0.0, 1.0, 0.0], unknown: 0}
//	Tags: !strings [alpha, beta]
//	Rails: !paths
//	  - - {position: [...], normal: [...], unknown: 0}
package yamltext

const (
	// TagPath marks a sequence of points that is a PathRef.
	TagPath = "!path"
	// TagStrings marks a sequence of strings that is a StringArray node.
	TagStrings = "!strings"
	// TagPaths marks a sequence of point sequences that is a PathArray node.
	TagPaths = "!paths"

	tagStr   = "!!str"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagBool  = "!!bool"
	tagNull  = "!!null"
	tagSeq   = "!!seq"
	tagMap   = "!!map"

	keyPosition = "position"
	keyNormal   = "normal"
	keyUnknown  = "unknown"

	// DefaultIndent is the indentation Marshal uses.
	DefaultIndent = 2
)
