package byaml

import (
	"fmt"
	"math"
	"slices"

	"github.com/joshuapare/byamlkit/internal/buf"
	"github.com/joshuapare/byamlkit/internal/format"
	"github.com/joshuapare/byamlkit/internal/strenc"
	"github.com/joshuapare/byamlkit/pkg/types"
)

// decodeMode says where a node's tag came from, which decides how a
// container is located.
type decodeMode int

const (
	// modeDirect: the tag is read from the stream at the node itself. A
	// container's count is the low 24 bits of the word starting at the tag.
	modeDirect decodeMode = iota
	// modeSlot: the tag came from a parent array or dictionary. A container
	// slot holds the absolute offset of the node.
	modeSlot
)

// pools is the read-only context indices are resolved against. It belongs
// to the File being parsed and lives for one parse call.
type pools struct {
	names   []string
	strings []string
	paths   []Path

	hasStrings bool
	hasPaths   bool
}

// decoder owns the cursor for one parse. Offset jumps save and restore the
// position, so nested containers leave it where the parent expects.
type decoder struct {
	r      *buf.Reader
	pools  *pools
	enc    strenc.Encoding
	limits types.Limits
	depth  int
}

func newDecoder(b []byte, opts Options) *decoder {
	return &decoder{
		r:      buf.NewReader(b),
		pools:  &pools{},
		enc:    opts.StringEncoding,
		limits: opts.Limits.WithDefaults(),
	}
}

// decodeAt decodes the node whose tag byte is at off.
func (d *decoder) decodeAt(off uint32) (Node, error) {
	if err := d.r.Seek(int(off)); err != nil {
		return nil, err
	}
	return d.decodeNode(modeDirect, 0, 0)
}

// decodeNode turns the bytes at the cursor into a Node. In modeDirect tag
// and tagOff are ignored and the tag is read from the stream; in modeSlot
// they name the parent-supplied tag and where it was read from.
func (d *decoder) decodeNode(mode decodeMode, tag format.NodeType, tagOff int) (Node, error) {
	if mode == modeDirect {
		tagOff = d.r.Tell()
		t, err := d.r.U8()
		if err != nil {
			return nil, err
		}
		tag = format.NodeType(t)
	}
	switch {
	case tag.IsContainer():
		return d.container(mode, tag)
	case tag.IsValue():
		return d.value(tag)
	default:
		return nil, &types.TagError{Tag: uint8(tag), Offset: tagOff}
	}
}

func (d *decoder) container(mode decodeMode, tag format.NodeType) (Node, error) {
	ret := -1
	if mode == modeSlot {
		off, err := d.r.U32()
		if err != nil {
			return nil, err
		}
		ret = d.r.Tell()
		if err := d.r.Seek(int(off)); err != nil {
			return nil, fmt.Errorf("%v offset: %w", tag, err)
		}
	} else if err := d.r.Skip(-1); err != nil {
		return nil, err
	}

	d.depth++
	defer func() { d.depth-- }()
	if d.depth > d.limits.MaxDepth {
		return nil, types.Errorf(types.ErrKindCorrupt, "%v at 0x%X nested deeper than %d", tag, d.r.Tell(), d.limits.MaxDepth)
	}

	nodeOff := d.r.Tell()
	word, err := d.r.U32()
	if err != nil {
		return nil, err
	}
	count := int(word & format.CountMask)
	if count > d.limits.MaxCount {
		return nil, types.Errorf(types.ErrKindCorrupt, "%v at 0x%X has %d entries (limit %d)", tag, nodeOff, count, d.limits.MaxCount)
	}

	var n Node
	switch tag {
	case format.TypeArray:
		n, err = d.array(nodeOff, count)
	case format.TypeDictionary:
		n, err = d.dictionary(count)
	case format.TypeStringArray:
		n, err = d.stringArray(nodeOff, count)
	case format.TypePathArray:
		n, err = d.pathArray(nodeOff, count)
	}
	if err != nil {
		return nil, err
	}
	if ret >= 0 {
		if err := d.r.Seek(ret); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (d *decoder) array(nodeOff, count int) (*Array, error) {
	tagsOff := d.r.Tell()
	tags, err := d.r.Bytes(count)
	if err != nil {
		return nil, fmt.Errorf("array tags: %w", err)
	}
	if err := d.r.Seek(format.ArraySlotsOffset(nodeOff, count)); err != nil {
		return nil, fmt.Errorf("array slots: %w", err)
	}
	if _, err := buf.CheckListBounds(d.r.Len(), d.r.Tell(), count, format.SlotSize); err != nil {
		return nil, fmt.Errorf("array slots: %w", err)
	}
	items := make([]Node, count)
	for i, t := range tags {
		n, err := d.decodeNode(modeSlot, format.NodeType(t), tagsOff+i)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		items[i] = n
	}
	return &Array{Items: items}, nil
}

func (d *decoder) dictionary(count int) (*Dictionary, error) {
	if _, err := buf.CheckListBounds(d.r.Len(), d.r.Tell(), count, format.DictEntrySize); err != nil {
		return nil, fmt.Errorf("dictionary entries: %w", err)
	}
	dict := newDictionaryCap(count)
	for i := range count {
		recOff := d.r.Tell()
		rec, err := d.r.U32()
		if err != nil {
			return nil, err
		}
		idx, tag := format.SplitDictRecord(rec)
		if uint64(idx) >= uint64(len(d.pools.names)) {
			return nil, types.Errorf(types.ErrKindIndexOutOfRange,
				"dictionary entry %d at 0x%X: name index %d >= name pool length %d", i, recOff, idx, len(d.pools.names))
		}
		name := d.pools.names[idx]
		n, err := d.decodeNode(modeSlot, tag, recOff+format.SlotSize-1)
		if err != nil {
			return nil, fmt.Errorf("dictionary[%q]: %w", name, err)
		}
		dict.Set(name, n)
	}
	return dict, nil
}

// relativeOffsets reads n offsets relative to nodeOff and returns them as
// absolute positions, plus the position just after the table.
func (d *decoder) relativeOffsets(nodeOff, n int) ([]int, int, error) {
	rel, err := d.r.U32s(n)
	if err != nil {
		return nil, 0, err
	}
	abs := make([]int, n)
	for i, o := range rel {
		p, ok := buf.AddOverflowSafe(nodeOff, int(o))
		if !ok {
			return nil, 0, types.Errorf(types.ErrKindOutOfBounds, "offset 0x%X overflows", o)
		}
		abs[i] = p
	}
	return abs, d.r.Tell(), nil
}

func (d *decoder) stringArray(nodeOff, count int) (*StringArray, error) {
	offs, after, err := d.relativeOffsets(nodeOff, count)
	if err != nil {
		return nil, fmt.Errorf("string table offsets: %w", err)
	}
	items := make([]string, count)
	for i, p := range offs {
		if err := d.r.Seek(p); err != nil {
			return nil, fmt.Errorf("string %d: %w", i, err)
		}
		raw, err := d.r.CBytes(d.limits.MaxStringLen)
		if err != nil {
			return nil, fmt.Errorf("string %d: %w", i, err)
		}
		s, err := d.enc.Decode(raw)
		if err != nil {
			return nil, &types.Error{Kind: types.ErrKindCorrupt, Msg: fmt.Sprintf("string %d at 0x%X", i, p), Err: err}
		}
		items[i] = s
	}
	if err := d.r.Seek(after); err != nil {
		return nil, err
	}
	return &StringArray{Items: items}, nil
}

func (d *decoder) pathArray(nodeOff, count int) (*PathArray, error) {
	offs, after, err := d.relativeOffsets(nodeOff, count+1)
	if err != nil {
		return nil, fmt.Errorf("path table offsets: %w", err)
	}
	paths := make([]Path, count)
	for i := range count {
		span := offs[i+1] - offs[i]
		if span < 0 {
			return nil, types.Errorf(types.ErrKindCorrupt, "path %d: end 0x%X before start 0x%X", i, offs[i+1], offs[i])
		}
		points := span / format.PathPointSize
		if _, err := buf.CheckListBounds(d.r.Len(), offs[i], points, format.PathPointSize); err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		if err := d.r.Seek(offs[i]); err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		path := make(Path, points)
		for j := range path {
			if path[j], err = d.pathPoint(); err != nil {
				return nil, fmt.Errorf("path %d point %d: %w", i, j, err)
			}
		}
		paths[i] = path
	}
	if err := d.r.Seek(after); err != nil {
		return nil, err
	}
	return &PathArray{Paths: paths}, nil
}

func (d *decoder) pathPoint() (PathPoint, error) {
	var f [6]float32
	for i := range f {
		v, err := d.r.F32()
		if err != nil {
			return PathPoint{}, err
		}
		f[i] = v
	}
	unk, err := d.r.U32()
	if err != nil {
		return PathPoint{}, err
	}
	return PathPoint{
		Position: Vector3{X: f[0], Y: f[1], Z: f[2]},
		Normal:   Vector3{X: f[3], Y: f[4], Z: f[5]},
		Unknown:  unk,
	}, nil
}

func (d *decoder) value(tag format.NodeType) (Node, error) {
	at := d.r.Tell()
	raw, err := d.r.U32()
	if err != nil {
		return nil, err
	}
	switch tag {
	case format.TypeStringIndex:
		if !d.pools.hasStrings {
			return nil, types.Errorf(types.ErrKindIndexOutOfRange, "string index %d at 0x%X: file has no string pool", raw, at)
		}
		if uint64(raw) >= uint64(len(d.pools.strings)) {
			return nil, types.Errorf(types.ErrKindIndexOutOfRange,
				"string index %d at 0x%X >= string pool length %d", raw, at, len(d.pools.strings))
		}
		return String(d.pools.strings[raw]), nil
	case format.TypePathIndex:
		if !d.pools.hasPaths {
			return nil, types.Errorf(types.ErrKindIndexOutOfRange, "path index %d at 0x%X: file has no path pool", raw, at)
		}
		if uint64(raw) >= uint64(len(d.pools.paths)) {
			return nil, types.Errorf(types.ErrKindIndexOutOfRange,
				"path index %d at 0x%X >= path pool length %d", raw, at, len(d.pools.paths))
		}
		return PathRef{Path: slices.Clone(d.pools.paths[raw])}, nil
	case format.TypeBoolean:
		return Bool(raw != 0), nil
	case format.TypeInteger:
		return Int(int32(raw)), nil
	case format.TypeFloat:
		return Float(math.Float32frombits(raw)), nil
	}
	return nil, &types.TagError{Tag: uint8(tag), Offset: at - 1}
}
