package buf

import (
	"bytes"

	"github.com/joshuapare/byamlkit/pkg/types"
)

// Reader is a random-access big-endian cursor over a fixed buffer.
//
// A Reader is single-owner state: callers that jump to an offset save Tell()
// and Seek back when done. It never grows the buffer and never panics on
// malformed input; every read past the end returns types.ErrOutOfBounds.
type Reader struct {
	b   []byte
	pos int
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Len returns the size of the underlying buffer.
func (r *Reader) Len() int { return len(r.b) }

// Tell returns the current absolute position.
func (r *Reader) Tell() int { return r.pos }

// Seek moves to the absolute position pos. Seeking to Len() is allowed.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.b) {
		return types.Errorf(types.ErrKindOutOfBounds, "seek to 0x%X (len 0x%X)", pos, len(r.b))
	}
	r.pos = pos
	return nil
}

// Skip moves delta bytes relative to the current position.
func (r *Reader) Skip(delta int) error {
	pos, ok := AddOverflowSafe(r.pos, delta)
	if !ok {
		return types.Errorf(types.ErrKindOutOfBounds, "seek overflow: 0x%X%+d", r.pos, delta)
	}
	return r.Seek(pos)
}

func (r *Reader) take(n int) ([]byte, error) {
	b, ok := Slice(r.b, r.pos, n)
	if !ok {
		return nil, types.Errorf(types.ErrKindOutOfBounds, "read %d bytes at 0x%X (len 0x%X)", n, r.pos, len(r.b))
	}
	r.pos += n
	return b, nil
}

func (r *Reader) U8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) U16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return U16BE(b), nil
}

func (r *Reader) U32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return U32BE(b), nil
}

func (r *Reader) I32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return I32BE(b), nil
}

func (r *Reader) F32() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return F32BE(b), nil
}

// U32s reads n consecutive uint32 values. The whole table is bounds-checked
// before anything is allocated.
func (r *Reader) U32s(n int) ([]uint32, error) {
	if _, err := CheckListBounds(len(r.b), r.pos, n, 4); err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = U32BE(r.b[r.pos:])
		r.pos += 4
	}
	return out, nil
}

// Bytes reads n raw bytes. The result aliases the underlying buffer.
func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.take(n)
}

// FixedString reads n raw bytes as a string without trimming NULs.
func (r *Reader) FixedString(n int) (string, error) {
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CBytes reads up to the next zero byte and consumes it. The terminator is
// excluded from the result, which aliases the underlying buffer. A string
// longer than maxLen (when maxLen > 0) or missing its terminator fails.
func (r *Reader) CBytes(maxLen int) ([]byte, error) {
	rest := r.b[r.pos:]
	n := bytes.IndexByte(rest, 0)
	if n < 0 {
		return nil, types.Errorf(types.ErrKindOutOfBounds, "unterminated string at 0x%X", r.pos)
	}
	if maxLen > 0 && n > maxLen {
		return nil, types.Errorf(types.ErrKindCorrupt, "string at 0x%X exceeds %d bytes", r.pos, maxLen)
	}
	r.pos += n + 1
	return rest[:n], nil
}

// CString reads a NUL-terminated string and excludes the terminator.
func (r *Reader) CString() (string, error) {
	b, err := r.CBytes(0)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
