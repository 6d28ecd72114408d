package byaml

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/byamlkit/internal/buf"
	"github.com/joshuapare/byamlkit/internal/format"
)

// fixture assembles a BYAML buffer byte by byte, independent of the encoder.
type fixture struct {
	w   *buf.Writer
	hdr format.Header
}

// newFixture writes a header placeholder plus name and string pools. Nil
// slices leave the corresponding pool absent.
func newFixture(names, strs []string) *fixture {
	f := &fixture{w: buf.NewWriter(256)}
	f.w.PutBytes(make([]byte, format.HeaderSize))
	if names != nil {
		f.hdr.NamePoolOffset = uint32(f.stringTable(names))
	}
	if strs != nil {
		f.hdr.StrPoolOffset = uint32(f.stringTable(strs))
	}
	return f
}

// stringTable writes a StringArray with N+1 relative offsets.
func (f *fixture) stringTable(items []string) int {
	off := f.begin(format.TypeStringArray, len(items))
	slots := make([]int, len(items)+1)
	for i := range slots {
		slots[i] = f.w.Reserve4()
	}
	for i, s := range items {
		f.patch(slots[i], f.w.Tell()-off)
		f.w.PutCString(s)
	}
	f.patch(slots[len(items)], f.w.Tell()-off)
	return off
}

// pathTable writes a PathArray whose path i has counts[i] points. Point j
// of path i has Position.X = i*100+j and Unknown = j.
func (f *fixture) pathTable(counts ...int) int {
	off := f.begin(format.TypePathArray, len(counts))
	slots := make([]int, len(counts)+1)
	for i := range slots {
		slots[i] = f.w.Reserve4()
	}
	for i, n := range counts {
		f.patch(slots[i], f.w.Tell()-off)
		for j := range n {
			f.w.PutF32(float32(i*100 + j))
			f.w.PutF32(1)
			f.w.PutF32(2)
			f.w.PutF32(0)
			f.w.PutF32(1)
			f.w.PutF32(0)
			f.w.PutU32(uint32(j))
		}
	}
	f.patch(slots[len(counts)], f.w.Tell()-off)
	return off
}

// begin aligns the end of the buffer and writes a container word.
func (f *fixture) begin(t format.NodeType, count int) int {
	f.w.SeekEnd()
	f.w.Align4()
	off := f.w.Tell()
	f.w.PutU32(format.ContainerWord(t, count))
	return off
}

func (f *fixture) patch(at, v int) {
	if err := f.w.Patch32(at, uint32(v)); err != nil {
		panic(err)
	}
}

// bytes finalizes the header and returns the buffer.
func (f *fixture) bytes() []byte {
	out := f.w.Bytes()
	f.hdr.Put(out)
	return out
}

// requireTreeEqual compares trees structurally and prints both as JSON on
// mismatch.
func requireTreeEqual(t *testing.T, want, got Node) {
	t.Helper()
	if Equal(want, got) {
		return
	}
	wj, _ := json.MarshalIndent(want, "", "  ")
	gj, _ := json.MarshalIndent(got, "", "  ")
	require.Failf(t, "trees differ", "want:\n%s\ngot:\n%s", wj, gj)
}

// sampleTree exercises every node type the encoder writes.
func sampleTree() *Dictionary {
	path := Path{
		{Position: Vector3{X: 1, Y: 2, Z: 3}, Normal: Vector3{Y: 1}, Unknown: 7},
		{Position: Vector3{X: -4, Y: 5.5, Z: 0}, Normal: Vector3{Z: -1}, Unknown: 0xDEADBEEF},
	}

	translate := NewDictionary()
	translate.Set("X", Float(10))
	translate.Set("Y", Float(-2.5))
	translate.Set("Z", Float(3))

	obj := NewDictionary()
	obj.Set("UnitIdName", String("ItemBox"))
	obj.Set("ObjId", Int(1018))
	obj.Set("Translate", translate)
	obj.Set("TopView", Bool(false))
	obj.Set("Params", NewArray(Float(0), Float(1.5), Int(-3)))

	root := NewDictionary()
	root.Set("LapNumber", Int(3))
	root.Set("IsFirstLeft", Bool(true))
	root.Set("HeadLight", String("On"))
	root.Set("Obj", NewArray(obj, NewDictionary()))
	root.Set("Mixed", NewArray(String("a"), NewArray(), Int(1), String("b"), Bool(true)))
	root.Set("Route", PathRef{Path: path})
	root.Set("Tags", &StringArray{Items: []string{"zeta", "alpha"}})
	root.Set("Rails", &PathArray{Paths: []Path{path[:1], nil}})
	return root
}
