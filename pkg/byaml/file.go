package byaml

import (
	"fmt"

	"github.com/joshuapare/byamlkit/internal/format"
	"github.com/joshuapare/byamlkit/internal/mmfile"
	"github.com/joshuapare/byamlkit/internal/writer"
	"github.com/joshuapare/byamlkit/pkg/types"
)

// Header is the fixed file header (re-exported from internal/format).
type Header = format.Header

// File is a parsed BYAML document: its header, the three pools and the root.
//
// A nil pool means the header offset was 0. That is distinct from a pool
// that is present and empty, and Encode preserves the difference.
type File struct {
	Header Header

	// Names holds dictionary key names.
	Names *StringArray
	// Strings holds the values of String nodes.
	Strings *StringArray
	// Paths holds the values of PathRef nodes.
	Paths *PathArray

	// Root is the document root, usually a *Dictionary or *Array. It is nil
	// when the header's root offset is 0.
	Root Node
}

// Parse decodes a complete BYAML buffer with DefaultOptions.
func Parse(b []byte) (*File, error) {
	return ParseWithOptions(b, DefaultOptions())
}

// ParseWithOptions decodes a complete BYAML buffer. The header is validated
// first, then the name, string and path pools are decoded, then the root.
// Any error aborts the parse; no partial File is returned.
func ParseWithOptions(b []byte, opts Options) (*File, error) {
	log := loggerOr(opts.Logger)

	hdr, err := format.ParseHeader(b)
	if err != nil {
		return nil, err
	}
	d := newDecoder(b, opts)
	f := &File{Header: hdr}

	if hdr.NamePoolOffset != 0 {
		if f.Names, err = decodeStringPool(d, hdr.NamePoolOffset, "name pool"); err != nil {
			return nil, err
		}
		d.pools.names = f.Names.Items
	}
	if hdr.StrPoolOffset != 0 {
		if f.Strings, err = decodeStringPool(d, hdr.StrPoolOffset, "string pool"); err != nil {
			return nil, err
		}
		d.pools.strings = f.Strings.Items
		d.pools.hasStrings = true
	}
	if hdr.PathPoolOffset != 0 {
		n, err := decodePool(d, hdr.PathPoolOffset, format.TypePathArray, "path pool")
		if err != nil {
			return nil, err
		}
		f.Paths = n.(*PathArray)
		d.pools.paths = f.Paths.Paths
		d.pools.hasPaths = true
	}
	log.Debug("byaml: pools decoded",
		"names", f.Names.Len(), "strings", f.Strings.Len(),
		"paths", f.Paths.Len(), "path_pool", f.Paths != nil)

	if hdr.RootOffset != 0 {
		if f.Root, err = d.decodeAt(hdr.RootOffset); err != nil {
			return nil, fmt.Errorf("root at 0x%X: %w", hdr.RootOffset, err)
		}
		log.Debug("byaml: root decoded", "type", f.Root.Type(), "len", f.Root.Len())
	}
	return f, nil
}

func decodeStringPool(d *decoder, off uint32, what string) (*StringArray, error) {
	n, err := decodePool(d, off, format.TypeStringArray, what)
	if err != nil {
		return nil, err
	}
	return n.(*StringArray), nil
}

// decodePool checks the tag at off before decoding so a misplaced pool
// offset reports a type mismatch instead of decoding garbage.
func decodePool(d *decoder, off uint32, want format.NodeType, what string) (Node, error) {
	if err := d.r.Seek(int(off)); err != nil {
		return nil, fmt.Errorf("%s at 0x%X: %w", what, off, err)
	}
	t, err := d.r.U8()
	if err != nil {
		return nil, fmt.Errorf("%s at 0x%X: %w", what, off, err)
	}
	if got := format.NodeType(t); got != want {
		if !got.Valid() {
			return nil, fmt.Errorf("%s: %w", what, &types.TagError{Tag: t, Offset: int(off)})
		}
		return nil, types.Errorf(types.ErrKindType, "%s at 0x%X is %v, want %v", what, off, got, want)
	}
	n, err := d.decodeAt(off)
	if err != nil {
		return nil, fmt.Errorf("%s at 0x%X: %w", what, off, err)
	}
	return n, nil
}

// Open memory-maps the file at path and parses it with DefaultOptions.
func Open(path string) (*File, error) {
	return OpenWithOptions(path, DefaultOptions())
}

// OpenWithOptions memory-maps the file at path and parses it. The mapping
// is released before returning; the decoded tree does not reference it.
func OpenWithOptions(path string, opts Options) (f *File, err error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("unmap %s: %w", path, cerr)
		}
	}()
	f, err = ParseWithOptions(data, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// Sink receives an encoded file.
type Sink interface {
	WriteBYAML(b []byte) error
}

// EncodeTo encodes f and hands the bytes to s.
func (f *File) EncodeTo(s Sink, opts EncodeOptions) error {
	b, err := f.Encode(opts)
	if err != nil {
		return err
	}
	return s.WriteBYAML(b)
}

// Save encodes f and writes it to path atomically.
func (f *File) Save(path string, opts EncodeOptions) error {
	return f.EncodeTo(&writer.FileWriter{Path: path}, opts)
}

// Stats summarizes a File for tooling.
type Stats struct {
	Names        int            `json:"names"`
	Strings      int            `json:"strings"`
	Paths        int            `json:"paths"`
	HasPathPool  bool           `json:"has_path_pool"`
	RootType     string         `json:"root_type"`
	Nodes        map[string]int `json:"nodes"`
	MaxDepth     int            `json:"max_depth"`
	PathPoints   int            `json:"path_points"`
	HeaderOffset map[string]int `json:"header_offsets"`
}

// Stats walks the tree and counts nodes by type.
func (f *File) Stats() Stats {
	s := Stats{
		Names:       f.Names.Len(),
		Strings:     f.Strings.Len(),
		Paths:       f.Paths.Len(),
		HasPathPool: f.Paths != nil,
		Nodes:       make(map[string]int),
		HeaderOffset: map[string]int{
			"name_pool":   int(f.Header.NamePoolOffset),
			"string_pool": int(f.Header.StrPoolOffset),
			"path_pool":   int(f.Header.PathPoolOffset),
			"root":        int(f.Header.RootOffset),
		},
	}
	if f.Paths != nil {
		for _, p := range f.Paths.Paths {
			s.PathPoints += len(p)
		}
	}
	if f.Root == nil {
		s.RootType = "none"
		return s
	}
	s.RootType = f.Root.Type().String()
	var walk func(n Node, depth int)
	walk = func(n Node, depth int) {
		if n == nil {
			return
		}
		s.Nodes[n.Type().String()]++
		s.MaxDepth = max(s.MaxDepth, depth)
		if n.Type() == TypeArray || n.Type() == TypeDictionary {
			for c := range Children(n) {
				walk(c, depth+1)
			}
		}
	}
	walk(f.Root, 0)
	return s
}
