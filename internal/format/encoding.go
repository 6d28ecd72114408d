package format

import "encoding/binary"

// Binary encoding utilities for big-endian integers at fixed offsets.
//
// Used for header fields and for building fixtures; streaming reads and writes
// go through internal/buf.

// PutU16 writes a uint16 value to the buffer at the specified offset in big-endian format.
func PutU16(b []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes a uint32 value to the buffer at the specified offset in big-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+4], v)
}

// ReadU16 reads a uint16 value from the buffer at the specified offset in big-endian format.
func ReadU16(b []byte, off int) uint16 {
	return binary.BigEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in big-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off : off+4])
}

// ContainerWord packs a container's tag and element count into its first uint32.
func ContainerWord(t NodeType, count int) uint32 {
	return uint32(t)<<CountTagShift | uint32(count)&CountMask
}

// DictRecord packs a dictionary entry's name index and value tag.
func DictRecord(nameIndex uint32, t NodeType) uint32 {
	return nameIndex<<DictNameShift | uint32(t)
}

// SplitDictRecord unpacks a dictionary record into its name index and tag.
func SplitDictRecord(rec uint32) (uint32, NodeType) {
	return rec >> DictNameShift, NodeType(rec & DictTagMask)
}
