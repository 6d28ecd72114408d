// Package format houses the low-level layout of the BYAML v1 container: the
// header, the node tag registry and the fixed record sizes. It is kept
// independent from the public API so the decoder and encoder share one source
// of truth for every offset and size.
package format

var (
	// Magic is the two-byte signature at the start of every BYAML file.
	// Layout:
	//   0x00  'B' 'Y'
	Magic = []byte{'B', 'Y'}
)

const (
	// Version is the only header version this package reads and writes.
	Version = 0x0001

	// HeaderSize is the size of the fixed header in bytes.
	HeaderSize = 0x14

	// Header field offsets.
	MagicOffset         = 0x00
	MagicSize           = 2
	VersionOffset       = 0x02
	NamePoolOffsetField = 0x04
	StrPoolOffsetField  = 0x08
	PathPoolOffsetField = 0x0C
	RootOffsetField     = 0x10

	// SlotSize is the width of an inline value or container offset inside an
	// array or dictionary.
	SlotSize = 4

	// DictEntrySize is one dictionary entry: the name/tag record plus its slot.
	DictEntrySize = 8

	// DictNameShift extracts the name index from a dictionary record.
	DictNameShift = 8

	// DictTagMask extracts the tag from a dictionary record.
	DictTagMask = 0xFF

	// MaxNameIndex is the largest name index a 24-bit record field can hold.
	MaxNameIndex = 0x00FFFFFF

	// CountMask extracts the element count from a container's first uint32.
	// The top byte echoes the node tag.
	CountMask = 0x00FFFFFF

	// CountTagShift positions the tag in a container's first uint32.
	CountTagShift = 24

	// ContainerHeaderSize is the tag+count word at the start of a container.
	ContainerHeaderSize = 4

	// PathPointSize is one path point: position (3×f32), normal (3×f32) and
	// an opaque uint32.
	PathPointSize = 0x1C

	// Alignment is the byte alignment of containers and of the first slot of
	// an array.
	Alignment = 4

	// AlignmentMask is Alignment - 1.
	AlignmentMask = Alignment - 1
)
