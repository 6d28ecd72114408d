package byaml

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/byamlkit/internal/buf"
	"github.com/joshuapare/byamlkit/internal/format"
)

type memSink struct{ b []byte }

func (s *memSink) WriteBYAML(b []byte) error {
	s.b = append(s.b[:0], b...)
	return nil
}

func roundTrip(t *testing.T, root Node, opts EncodeOptions) *File {
	t.Helper()
	data, err := Encode(root, opts)
	require.NoError(t, err)
	f, err := ParseWithOptions(data, Options{StringEncoding: opts.StringEncoding})
	require.NoError(t, err)
	return f
}

func TestEncode_RoundTrip(t *testing.T) {
	root := sampleTree()
	f := roundTrip(t, root, EncodeOptions{})
	requireTreeEqual(t, root, f.Root)

	assert.Equal(t, []string{
		"HeadLight", "IsFirstLeft", "LapNumber", "Mixed", "Obj", "ObjId", "Params",
		"Rails", "Route", "Tags", "TopView", "Translate", "UnitIdName", "X", "Y", "Z",
	}, f.Names.Items)
	assert.Equal(t, []string{"ItemBox", "On", "a", "b"}, f.Strings.Items)
	require.NotNil(t, f.Paths)
	assert.Equal(t, 1, f.Paths.Len())
}

func TestEncode_IdempotentBytes(t *testing.T) {
	first, err := Encode(sampleTree(), EncodeOptions{})
	require.NoError(t, err)
	f, err := Parse(first)
	require.NoError(t, err)
	second, err := f.Encode(EncodeOptions{})
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second), "re-encoding a decoded file changed its bytes")
}

func TestEncode_FloatBitsSurvive(t *testing.T) {
	nan := math.Float32frombits(0x7FC00001)
	negZero := math.Float32frombits(0x80000000)
	root := NewArray(Float(nan), Float(negZero), Float(math.MaxFloat32), Int(math.MinInt32))
	f := roundTrip(t, root, EncodeOptions{})
	requireTreeEqual(t, root, f.Root)
}

func TestEncode_ValueRoot(t *testing.T) {
	for _, root := range []Node{Int(7), Bool(true), Float(2.5), String("solo")} {
		f := roundTrip(t, root, EncodeOptions{})
		requireTreeEqual(t, root, f.Root)
	}
}

func TestEncode_NilRoot(t *testing.T) {
	data, err := Encode(nil, EncodeOptions{})
	require.NoError(t, err)
	require.Len(t, data, format.HeaderSize)

	f, err := Parse(data)
	require.NoError(t, err)
	assert.Nil(t, f.Root)
	assert.Nil(t, f.Names)
	assert.Nil(t, f.Strings)
	assert.Nil(t, f.Paths)
}

func TestEncode_ArraySlotsAligned(t *testing.T) {
	for n := 1; n <= 5; n++ {
		items := make([]Node, n)
		for i := range items {
			items[i] = Int(i + 100)
		}
		data, err := Encode(NewArray(items...), EncodeOptions{})
		require.NoError(t, err)

		hdr, err := format.ParseHeader(data)
		require.NoError(t, err)
		root := int(hdr.RootOffset)
		require.Zero(t, root%format.Alignment)
		slots := format.ArraySlotsOffset(root, n)
		for i := range n {
			assert.Equal(t, uint32(i+100), format.ReadU32(data, slots+i*format.SlotSize))
		}
	}
}

func TestEncode_ContainersAligned(t *testing.T) {
	data, err := Encode(sampleTree(), EncodeOptions{})
	require.NoError(t, err)
	hdr, err := format.ParseHeader(data)
	require.NoError(t, err)
	for _, off := range []uint32{hdr.NamePoolOffset, hdr.StrPoolOffset, hdr.PathPoolOffset, hdr.RootOffset} {
		require.NotZero(t, off)
		assert.Zero(t, off%format.Alignment, "offset 0x%X", off)
	}
}

func TestEncode_StringTableHasEndOffset(t *testing.T) {
	data, err := Encode(NewArray(String("ab"), String("c")), EncodeOptions{})
	require.NoError(t, err)
	hdr, err := format.ParseHeader(data)
	require.NoError(t, err)

	off := int(hdr.StrPoolOffset)
	require.Equal(t, format.ContainerWord(format.TypeStringArray, 2), format.ReadU32(data, off))
	// Three offsets for two strings; the last marks the end of the data.
	assert.Equal(t, uint32(16), format.ReadU32(data, off+4))
	assert.Equal(t, uint32(19), format.ReadU32(data, off+8))
	assert.Equal(t, uint32(21), format.ReadU32(data, off+12))
}

func TestEncode_PreservesPools(t *testing.T) {
	root := NewDictionary()
	root.Set("k", String("used"))
	f := &File{
		Names:   &StringArray{Items: []string{"unused_name"}},
		Strings: &StringArray{Items: []string{"zz_unused"}},
		Paths:   &PathArray{},
		Root:    root,
	}
	data, err := f.Encode(EncodeOptions{})
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "unused_name"}, got.Names.Items)
	assert.Equal(t, []string{"used", "zz_unused"}, got.Strings.Items)
	require.NotNil(t, got.Paths, "empty path pool must stay present")
	assert.Equal(t, 0, got.Paths.Len())
}

func TestEncode_PathPoolOrderKept(t *testing.T) {
	a := Path{{Unknown: 1}}
	b := Path{{Unknown: 2}}
	c := Path{{Unknown: 3}}
	root := NewArray(PathRef{Path: c}, PathRef{Path: a})
	f := &File{Paths: &PathArray{Paths: []Path{b, a}}, Root: root}

	data, err := f.Encode(EncodeOptions{})
	require.NoError(t, err)
	got, err := Parse(data)
	require.NoError(t, err)

	require.Equal(t, 3, got.Paths.Len())
	assert.True(t, got.Paths.Paths[0].Equal(b))
	assert.True(t, got.Paths.Paths[1].Equal(a))
	assert.True(t, got.Paths.Paths[2].Equal(c))
	requireTreeEqual(t, root, got.Root)
}

func TestEncode_SortKeys(t *testing.T) {
	root := NewDictionary()
	root.Set("b", Int(2))
	root.Set("c", Int(3))
	root.Set("a", Int(1))

	kept := roundTrip(t, root, EncodeOptions{})
	assert.Equal(t, []string{"b", "c", "a"}, kept.Root.(*Dictionary).Keys())

	sorted := roundTrip(t, root, EncodeOptions{SortKeys: true})
	assert.Equal(t, []string{"a", "b", "c"}, sorted.Root.(*Dictionary).Keys())
	assert.Equal(t, Int(3), GetValue(sorted.Root, "c", Int(0)))
}

func TestEncode_ShiftJIS(t *testing.T) {
	root := NewDictionary()
	root.Set("コース", String("マリオ"))
	opts := EncodeOptions{StringEncoding: ShiftJIS}

	data, err := Encode(root, opts)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte{0x83, 0x52, 0x81, 0x5B, 0x83, 0x58, 0x00}))

	f := roundTrip(t, root, opts)
	requireTreeEqual(t, root, f.Root)
}

func TestEncode_Rejects(t *testing.T) {
	t.Run("nil child", func(t *testing.T) {
		_, err := Encode(NewArray(Int(1), nil), EncodeOptions{})
		require.ErrorIs(t, err, ErrTypeMismatch)
	})
	t.Run("nil dictionary value", func(t *testing.T) {
		d := NewDictionary()
		d.Set("k", nil)
		_, err := Encode(d, EncodeOptions{})
		require.ErrorIs(t, err, ErrTypeMismatch)
	})
	t.Run("NUL in string", func(t *testing.T) {
		_, err := Encode(NewArray(String("a\x00b")), EncodeOptions{})
		require.Error(t, err)
	})
	t.Run("unencodable in Shift-JIS", func(t *testing.T) {
		_, err := Encode(NewArray(String("😀")), EncodeOptions{StringEncoding: ShiftJIS})
		require.Error(t, err)
	})
	t.Run("cycle", func(t *testing.T) {
		a := NewArray()
		a.Append(a)
		_, err := Encode(a, EncodeOptions{})
		require.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestEncode_SharedSubtrees(t *testing.T) {
	shared := NewVector3Dictionary(Vector3{X: 1, Y: 2, Z: 3})
	root := NewArray(shared, shared)
	f := roundTrip(t, root, EncodeOptions{})
	requireTreeEqual(t, root, f.Root)

	a := f.Root.(*Array)
	assert.NotSame(t, a.Items[0], a.Items[1], "decoded children are independent")
}

func TestFile_SaveAndOpen(t *testing.T) {
	f := &File{Root: sampleTree()}
	path := filepath.Join(t.TempDir(), "course.byaml")
	require.NoError(t, f.Save(path, EncodeOptions{}))

	got, err := Open(path)
	require.NoError(t, err)
	requireTreeEqual(t, f.Root, got.Root)

	_, err = Open(filepath.Join(t.TempDir(), "missing.byaml"))
	require.Error(t, err)
}

func TestFile_EncodeTo(t *testing.T) {
	f := &File{Root: sampleTree()}
	var sink memSink
	require.NoError(t, f.EncodeTo(&sink, EncodeOptions{}))

	want, err := f.Encode(EncodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, want, sink.b)
}

func TestFile_Stats(t *testing.T) {
	f := roundTrip(t, sampleTree(), EncodeOptions{})
	s := f.Stats()

	assert.Equal(t, 16, s.Names)
	assert.Equal(t, 4, s.Strings)
	assert.Equal(t, 1, s.Paths)
	assert.True(t, s.HasPathPool)
	assert.Equal(t, 2, s.PathPoints)
	assert.Equal(t, "Dictionary", s.RootType)
	assert.Equal(t, 4, s.Nodes["Dictionary"])
	assert.Equal(t, 4, s.Nodes["Array"])
	assert.Equal(t, 4, s.MaxDepth)
	assert.Equal(t, int(f.Header.RootOffset), s.HeaderOffset["root"])

	empty := (&File{}).Stats()
	assert.Equal(t, "none", empty.RootType)
	assert.False(t, empty.HasPathPool)
}

func TestEncode_LongStringRoundTrip(t *testing.T) {
	long := strings.Repeat("a", 70<<10)
	root := NewDictionary()
	root.Set("S", String(long))

	f := roundTrip(t, root, EncodeOptions{})
	requireTreeEqual(t, root, f.Root)

	data, err := Encode(root, EncodeOptions{})
	require.NoError(t, err)
	_, err = ParseWithOptions(data, Options{Limits: StrictLimits()})
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestEncoder_BeginRejectsOversizeCount(t *testing.T) {
	e := &encoder{w: buf.NewWriter(0)}
	_, err := e.begin(format.TypeStringArray, format.CountMask+1)
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Zero(t, e.w.Len(), "nothing written for a rejected container")

	off, err := e.stringTable([]tableEntry{{raw: []byte("a")}})
	require.NoError(t, err)
	assert.Equal(t, format.ContainerWord(format.TypeStringArray, 1), format.ReadU32(e.w.Bytes(), off))
}
