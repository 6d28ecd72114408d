package buf

import (
	"encoding/binary"
	"math"

	"github.com/joshuapare/byamlkit/pkg/types"
)

// Writer is the growable mirror of Reader. Writes land at the current
// position, overwriting existing bytes and extending the buffer as needed.
// Reserve4 and Patch32 cover offsets that are only known after the target
// has been written.
type Writer struct {
	b   []byte
	pos int
}

// NewWriter returns an empty Writer with capacity for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	return &Writer{b: make([]byte, 0, max(sizeHint, 0))}
}

// Bytes returns the written buffer. It aliases the Writer's storage.
func (w *Writer) Bytes() []byte { return w.b }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.b) }

// Tell returns the current absolute position.
func (w *Writer) Tell() int { return w.pos }

// Seek moves to an absolute position within the written data.
func (w *Writer) Seek(pos int) error {
	if pos < 0 || pos > len(w.b) {
		return types.Errorf(types.ErrKindOutOfBounds, "seek to 0x%X (len 0x%X)", pos, len(w.b))
	}
	w.pos = pos
	return nil
}

// SeekEnd moves to the end of the written data.
func (w *Writer) SeekEnd() { w.pos = len(w.b) }

func (w *Writer) write(p []byte) {
	end := w.pos + len(p)
	if end > len(w.b) {
		w.b = append(w.b, make([]byte, end-len(w.b))...)
	}
	copy(w.b[w.pos:end], p)
	w.pos = end
}

func (w *Writer) PutU8(v uint8) { w.write([]byte{v}) }

func (w *Writer) PutU16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	w.write(tmp[:])
}

func (w *Writer) PutU32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	w.write(tmp[:])
}

func (w *Writer) PutI32(v int32) { w.PutU32(uint32(v)) }

func (w *Writer) PutF32(v float32) { w.PutU32(math.Float32bits(v)) }

// PutBytes writes p verbatim.
func (w *Writer) PutBytes(p []byte) { w.write(p) }

// PutFixedString writes s verbatim, without a terminator.
func (w *Writer) PutFixedString(s string) { w.write([]byte(s)) }

// PutCBytes writes p followed by a zero byte.
func (w *Writer) PutCBytes(p []byte) {
	w.write(p)
	w.PutU8(0)
}

// PutCString writes s followed by a zero byte.
func (w *Writer) PutCString(s string) { w.PutCBytes([]byte(s)) }

// Align4 writes zero bytes up to the next multiple of 4.
func (w *Writer) Align4() {
	if pad := -w.pos & 3; pad > 0 {
		w.write(make([]byte, pad))
	}
}

// Reserve4 writes a zero placeholder uint32 and returns its position for a
// later Patch32.
func (w *Writer) Reserve4() int {
	at := w.pos
	w.PutU32(0)
	return at
}

// Patch32 overwrites the uint32 at position at without moving the cursor.
func (w *Writer) Patch32(at int, v uint32) error {
	if !Has(w.b, at, 4) {
		return types.Errorf(types.ErrKindOutOfBounds, "patch at 0x%X (len 0x%X)", at, len(w.b))
	}
	binary.BigEndian.PutUint32(w.b[at:], v)
	return nil
}
