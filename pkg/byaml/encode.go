package byaml

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/joshuapare/byamlkit/internal/buf"
	"github.com/joshuapare/byamlkit/internal/format"
	"github.com/joshuapare/byamlkit/internal/strenc"
	"github.com/joshuapare/byamlkit/pkg/types"
)

// Encode writes root as a standalone BYAML file with fresh pools.
func Encode(root Node, opts EncodeOptions) ([]byte, error) {
	f := &File{Root: root}
	return f.Encode(opts)
}

// Encode serializes f. Layout: header, name pool, string pool, path pool,
// root, then every nested container, each container 4-byte aligned.
//
// The name and string pools are the sorted union of the existing pool
// entries and every name or string the tree uses. The path pool keeps its
// existing order and appends new paths. A pool that was absent and is not
// needed stays absent.
func (f *File) Encode(opts EncodeOptions) ([]byte, error) {
	log := loggerOr(opts.Logger)
	e := &encoder{
		w:         buf.NewWriter(4096),
		enc:       opts.StringEncoding,
		sortKeys:  opts.SortKeys,
		nameIndex: make(map[string]uint32),
		strIndex:  make(map[string]uint32),
		pathIndex: make(map[string]uint32),
	}

	names := newTableBuilder(f.Names)
	strs := newTableBuilder(f.Strings)
	var paths []Path
	if f.Paths != nil {
		paths = slices.Clone(f.Paths.Paths)
	}
	for i, p := range paths {
		if _, ok := e.pathIndex[pathKey(p)]; !ok {
			e.pathIndex[pathKey(p)] = uint32(i)
		}
	}
	if err := e.collect(f.Root, names, strs, &paths, 0); err != nil {
		return nil, err
	}

	nameTable, err := names.build(e.enc, e.nameIndex)
	if err != nil {
		return nil, fmt.Errorf("name pool: %w", err)
	}
	strTable, err := strs.build(e.enc, e.strIndex)
	if err != nil {
		return nil, fmt.Errorf("string pool: %w", err)
	}

	var hdr Header
	e.w.PutBytes(make([]byte, format.HeaderSize))
	if f.Names != nil || len(nameTable) > 0 {
		off, err := e.stringTable(nameTable)
		if err != nil {
			return nil, fmt.Errorf("name pool: %w", err)
		}
		hdr.NamePoolOffset = uint32(off)
	}
	if f.Strings != nil || len(strTable) > 0 {
		off, err := e.stringTable(strTable)
		if err != nil {
			return nil, fmt.Errorf("string pool: %w", err)
		}
		hdr.StrPoolOffset = uint32(off)
	}
	if f.Paths != nil || len(paths) > 0 {
		off, err := e.pathTable(paths)
		if err != nil {
			return nil, err
		}
		hdr.PathPoolOffset = uint32(off)
	}
	if f.Root != nil {
		off, err := e.root(f.Root)
		if err != nil {
			return nil, err
		}
		hdr.RootOffset = uint32(off)
	}
	if uint64(e.w.Len()) > math.MaxUint32 {
		return nil, types.Errorf(types.ErrKindOutOfBounds, "encoded size %d exceeds 4 GiB", e.w.Len())
	}
	out := e.w.Bytes()
	hdr.Put(out)

	log.Debug("byaml: encoded",
		"bytes", len(out), "names", len(nameTable), "strings", len(strTable), "paths", len(paths))
	return out, nil
}

type encoder struct {
	w        *buf.Writer
	enc      strenc.Encoding
	sortKeys bool

	nameIndex map[string]uint32
	strIndex  map[string]uint32
	pathIndex map[string]uint32
}

// tableBuilder gathers the unique strings of one pool.
type tableBuilder struct {
	seen map[string]struct{}
	list []string
}

func newTableBuilder(existing *StringArray) *tableBuilder {
	t := &tableBuilder{seen: make(map[string]struct{})}
	if existing != nil {
		for _, s := range existing.Items {
			t.add(s)
		}
	}
	return t
}

func (t *tableBuilder) add(s string) {
	if _, ok := t.seen[s]; ok {
		return
	}
	t.seen[s] = struct{}{}
	t.list = append(t.list, s)
}

// tableEntry is one pool string in its file encoding.
type tableEntry struct {
	s   string
	raw []byte
}

// build encodes and sorts the pool by encoded bytes, which is the order
// game readers binary-search, and fills index.
func (t *tableBuilder) build(enc strenc.Encoding, index map[string]uint32) ([]tableEntry, error) {
	out := make([]tableEntry, 0, len(t.list))
	for _, s := range t.list {
		raw, err := enc.Encode(s)
		if err != nil {
			return nil, err
		}
		out = append(out, tableEntry{s: s, raw: raw})
	}
	slices.SortFunc(out, func(a, b tableEntry) int { return bytes.Compare(a.raw, b.raw) })
	if len(out) > types.MaxFormatCount {
		return nil, types.Errorf(types.ErrKindOutOfBounds, "%d entries exceed the 24-bit count", len(out))
	}
	for i, te := range out {
		index[te.s] = uint32(i)
	}
	return out, nil
}

// collect records every name, string and path the tree references.
func (e *encoder) collect(n Node, names, strs *tableBuilder, paths *[]Path, depth int) error {
	if depth > types.MaxDepthDeep {
		return types.Errorf(types.ErrKindCorrupt, "tree nested deeper than %d (cycle?)", types.MaxDepthDeep)
	}
	switch n := orEmpty(n).(type) {
	case nil:
		return nil
	case String:
		strs.add(string(n))
	case PathRef:
		k := pathKey(n.Path)
		if _, ok := e.pathIndex[k]; !ok {
			e.pathIndex[k] = uint32(len(*paths))
			*paths = append(*paths, n.Path)
		}
	case *Array:
		for i, c := range n.Items {
			if c == nil {
				return types.Errorf(types.ErrKindType, "array[%d] is nil", i)
			}
			if err := e.collect(c, names, strs, paths, depth+1); err != nil {
				return err
			}
		}
	case *Dictionary:
		for k, c := range n.All() {
			if c == nil {
				return types.Errorf(types.ErrKindType, "dictionary[%q] is nil", k)
			}
			names.add(k)
			if err := e.collect(c, names, strs, paths, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// pathKey identifies a path by its encoded bytes.
func pathKey(p Path) string {
	w := buf.NewWriter(len(p) * format.PathPointSize)
	putPath(w, p)
	return string(w.Bytes())
}

func putPath(w *buf.Writer, p Path) {
	for _, pt := range p {
		w.PutF32(pt.Position.X)
		w.PutF32(pt.Position.Y)
		w.PutF32(pt.Position.Z)
		w.PutF32(pt.Normal.X)
		w.PutF32(pt.Normal.Y)
		w.PutF32(pt.Normal.Z)
		w.PutU32(pt.Unknown)
	}
}

// begin starts a container at the next aligned position past the end.
func (e *encoder) begin(t format.NodeType, count int) (int, error) {
	if count > types.MaxFormatCount {
		return 0, types.Errorf(types.ErrKindOutOfBounds, "%v with %d entries exceeds the 24-bit count", t, count)
	}
	e.w.SeekEnd()
	e.w.Align4()
	off := e.w.Tell()
	e.w.PutU32(format.ContainerWord(t, count))
	return off, nil
}

// relativeTable reserves n offset slots after a container word.
func (e *encoder) relativeTable(n int) []int {
	slots := make([]int, n)
	for i := range slots {
		slots[i] = e.w.Reserve4()
	}
	return slots
}

func (e *encoder) stringTable(items []tableEntry) (int, error) {
	raws := make([][]byte, len(items))
	for i, te := range items {
		raws[i] = te.raw
	}
	off, err := e.begin(format.TypeStringArray, len(raws))
	if err != nil {
		return 0, err
	}
	if err := e.putStrings(off, raws); err != nil {
		return 0, err
	}
	return off, nil
}

// putStrings writes N+1 offsets (the last marks the end of the data) and
// the NUL-terminated strings they point to.
func (e *encoder) putStrings(off int, raws [][]byte) error {
	slots := e.relativeTable(len(raws) + 1)
	for i, raw := range raws {
		if err := e.w.Patch32(slots[i], uint32(e.w.Tell()-off)); err != nil {
			return fmt.Errorf("string %d: %w", i, err)
		}
		e.w.PutCBytes(raw)
	}
	if err := e.w.Patch32(slots[len(raws)], uint32(e.w.Tell()-off)); err != nil {
		return fmt.Errorf("string table end: %w", err)
	}
	e.w.Align4()
	return nil
}

func (e *encoder) pathTable(paths []Path) (int, error) {
	off, err := e.begin(format.TypePathArray, len(paths))
	if err != nil {
		return 0, fmt.Errorf("path pool: %w", err)
	}
	if err := e.putPaths(off, paths); err != nil {
		return 0, fmt.Errorf("path pool: %w", err)
	}
	return off, nil
}

func (e *encoder) putPaths(off int, paths []Path) error {
	slots := e.relativeTable(len(paths) + 1)
	for i, p := range paths {
		if err := e.w.Patch32(slots[i], uint32(e.w.Tell()-off)); err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
		putPath(e.w, p)
	}
	if err := e.w.Patch32(slots[len(paths)], uint32(e.w.Tell()-off)); err != nil {
		return fmt.Errorf("path table end: %w", err)
	}
	return nil
}

// root writes the document root. A value root is written the way a direct
// decode reads it: tag byte, then the 4-byte payload.
func (e *encoder) root(n Node) (int, error) {
	if n.Type().IsContainer() {
		return e.container(n, 0)
	}
	e.w.SeekEnd()
	e.w.Align4()
	off := e.w.Tell()
	e.w.PutU8(uint8(n.Type()))
	if _, err := e.slot(n); err != nil {
		return 0, fmt.Errorf("root: %w", err)
	}
	return off, nil
}

// pendingChild is a container slot waiting for its target's offset.
type pendingChild struct {
	at   int
	node Node
	path string
}

// slot writes the 4-byte slot for n. Containers get a placeholder and are
// returned for the caller to write after the parent.
func (e *encoder) slot(n Node) (*pendingChild, error) {
	switch v := n.(type) {
	case String:
		idx, ok := e.strIndex[string(v)]
		if !ok {
			return nil, types.Errorf(types.ErrKindNotFound, "string %q missing from pool", string(v))
		}
		e.w.PutU32(idx)
	case PathRef:
		idx, ok := e.pathIndex[pathKey(v.Path)]
		if !ok {
			return nil, types.Errorf(types.ErrKindNotFound, "path missing from pool")
		}
		e.w.PutU32(idx)
	case Bool:
		if v {
			e.w.PutU32(1)
		} else {
			e.w.PutU32(0)
		}
	case Int:
		e.w.PutI32(int32(v))
	case Float:
		e.w.PutF32(float32(v))
	case *Array, *Dictionary, *StringArray, *PathArray:
		return &pendingChild{at: e.w.Reserve4(), node: n}, nil
	default:
		return nil, types.Errorf(types.ErrKindType, "cannot encode %T", n)
	}
	return nil, nil
}

// container writes n and, after it, every container it references.
func (e *encoder) container(n Node, depth int) (int, error) {
	if depth > types.MaxDepthDeep {
		return 0, types.Errorf(types.ErrKindCorrupt, "tree nested deeper than %d (cycle?)", types.MaxDepthDeep)
	}
	var (
		off     int
		err     error
		pending []*pendingChild
	)
	switch n := orEmpty(n).(type) {
	case *Array:
		if off, err = e.begin(format.TypeArray, len(n.Items)); err != nil {
			return 0, err
		}
		for _, c := range n.Items {
			e.w.PutU8(uint8(c.Type()))
		}
		e.w.Align4()
		for i, c := range n.Items {
			p, err := e.slot(c)
			if err != nil {
				return 0, fmt.Errorf("array[%d]: %w", i, err)
			}
			if p != nil {
				p.path = fmt.Sprintf("array[%d]", i)
				pending = append(pending, p)
			}
		}
	case *Dictionary:
		if off, err = e.begin(format.TypeDictionary, n.Len()); err != nil {
			return 0, err
		}
		keys := n.Keys()
		if e.sortKeys {
			slices.SortStableFunc(keys, func(a, b string) int {
				return cmp.Compare(e.nameIndex[a], e.nameIndex[b])
			})
		}
		for _, k := range keys {
			c, _ := n.Get(k)
			idx, ok := e.nameIndex[k]
			if !ok || idx > format.MaxNameIndex {
				return 0, types.Errorf(types.ErrKindIndexOutOfRange, "dictionary key %q has no 24-bit name index", k)
			}
			e.w.PutU32(format.DictRecord(idx, c.Type()))
			p, err := e.slot(c)
			if err != nil {
				return 0, fmt.Errorf("dictionary[%q]: %w", k, err)
			}
			if p != nil {
				p.path = fmt.Sprintf("dictionary[%q]", k)
				pending = append(pending, p)
			}
		}
	case *StringArray:
		raws := make([][]byte, len(n.Items))
		for i, s := range n.Items {
			if raws[i], err = e.enc.Encode(s); err != nil {
				return 0, fmt.Errorf("string array[%d]: %w", i, err)
			}
		}
		if off, err = e.begin(format.TypeStringArray, len(raws)); err != nil {
			return 0, err
		}
		if err := e.putStrings(off, raws); err != nil {
			return 0, err
		}
		return off, nil
	case *PathArray:
		if off, err = e.begin(format.TypePathArray, len(n.Paths)); err != nil {
			return 0, err
		}
		if err := e.putPaths(off, n.Paths); err != nil {
			return 0, err
		}
		return off, nil
	default:
		return 0, types.Errorf(types.ErrKindType, "%T is not a container", n)
	}

	for _, p := range pending {
		childOff, err := e.container(p.node, depth+1)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", p.path, err)
		}
		if err := e.w.Patch32(p.at, uint32(childOff)); err != nil {
			return 0, err
		}
	}
	return off, nil
}
