package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/byamlkit/pkg/types"
)

// Header is the fixed BYAML v1 header.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    2    'B' 'Y'
//	 0x02    2    Version (must be 1)
//	 0x04    4    Absolute offset of the name pool (StringArray)
//	 0x08    4    Absolute offset of the string pool (StringArray)
//	 0x0C    4    Absolute offset of the path pool (PathArray, 0 = absent)
//	 0x10    4    Absolute offset of the root node
//
// All fields are big-endian.
type Header struct {
	Version        uint16
	NamePoolOffset uint32
	StrPoolOffset  uint32
	PathPoolOffset uint32
	RootOffset     uint32
}

// ParseHeader validates and extracts the header. The magic is checked
// before the version, and both before any offset is read.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < MagicSize {
		return Header{}, fmt.Errorf("header: %w", types.Errorf(types.ErrKindOutOfBounds,
			"need %d bytes for magic, have %d", MagicSize, len(b)))
	}
	if !bytes.Equal(b[MagicOffset:MagicOffset+MagicSize], Magic) {
		return Header{}, &types.Error{
			Kind: types.ErrKindInvalidMagic,
			Msg:  fmt.Sprintf("header: bad magic %q", b[MagicOffset:MagicOffset+MagicSize]),
		}
	}
	if len(b) < VersionOffset+2 {
		return Header{}, fmt.Errorf("header: %w", types.Errorf(types.ErrKindOutOfBounds,
			"need %d bytes for version, have %d", VersionOffset+2, len(b)))
	}
	ver := ReadU16(b, VersionOffset)
	if ver != Version {
		return Header{}, &types.Error{
			Kind: types.ErrKindUnsupportedVersion,
			Msg:  fmt.Sprintf("header: version %d (want %d)", ver, Version),
		}
	}
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("header: %w", types.Errorf(types.ErrKindOutOfBounds,
			"need %d bytes, have %d", HeaderSize, len(b)))
	}
	return Header{
		Version:        ver,
		NamePoolOffset: ReadU32(b, NamePoolOffsetField),
		StrPoolOffset:  ReadU32(b, StrPoolOffsetField),
		PathPoolOffset: ReadU32(b, PathPoolOffsetField),
		RootOffset:     ReadU32(b, RootOffsetField),
	}, nil
}

// Put writes the header into b, which must be at least HeaderSize bytes.
func (h Header) Put(b []byte) {
	copy(b[MagicOffset:], Magic)
	PutU16(b, VersionOffset, Version)
	PutU32(b, NamePoolOffsetField, h.NamePoolOffset)
	PutU32(b, StrPoolOffsetField, h.StrPoolOffset)
	PutU32(b, PathPoolOffsetField, h.PathPoolOffset)
	PutU32(b, RootOffsetField, h.RootOffset)
}
