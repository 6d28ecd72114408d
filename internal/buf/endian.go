// Package buf contains the big-endian cursor and bounds helpers the BYAML
// decoder and encoder are built on.
package buf

import (
	"encoding/binary"
	"math"
)

// U16BE reads a big-endian uint16 from b. Returns 0 when b is too short.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// I32BE reads a big-endian int32 from b. Returns 0 when b is too short.
func I32BE(b []byte) int32 {
	return int32(U32BE(b))
}

// F32BE reads a big-endian IEEE-754 float32 from b. Returns 0 when b is too short.
func F32BE(b []byte) float32 {
	return math.Float32frombits(U32BE(b))
}
