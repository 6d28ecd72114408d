package byaml

import "github.com/joshuapare/byamlkit/pkg/types"

// Error and TagError are re-exported for convenience.
type (
	Error    = types.Error
	TagError = types.TagError
)

// Sentinels (re-exported from pkg/types).
var (
	ErrInvalidMagic       = types.ErrInvalidMagic
	ErrUnsupportedVersion = types.ErrUnsupportedVersion
	ErrOutOfBounds        = types.ErrOutOfBounds
	ErrUnsupportedNodeTag = types.ErrUnsupportedNodeTag
	ErrIndexOutOfRange    = types.ErrIndexOutOfRange
	ErrCorrupt            = types.ErrCorrupt
	ErrNotFound           = types.ErrNotFound
	ErrTypeMismatch       = types.ErrTypeMismatch
)
