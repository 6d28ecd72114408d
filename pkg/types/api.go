package types

import "fmt"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindInvalidMagic       ErrKind = iota // first two bytes are not "BY"
	ErrKindUnsupportedVersion                // header version other than 1
	ErrKindOutOfBounds                       // read or seek past the buffer end
	ErrKindUnsupportedNodeTag                // unrecognized node tag byte
	ErrKindIndexOutOfRange                   // name/string/path pool index past the pool
	ErrKindCorrupt                           // structural inconsistency (cycles, bad offsets)
	ErrKindNotFound                          // missing key/index on lookup
	ErrKindType                              // node has a different type than requested
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindInvalidMagic:
		return "invalid magic"
	case ErrKindUnsupportedVersion:
		return "unsupported version"
	case ErrKindOutOfBounds:
		return "out of bounds"
	case ErrKindUnsupportedNodeTag:
		return "unsupported node tag"
	case ErrKindIndexOutOfRange:
		return "index out of range"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindNotFound:
		return "not found"
	case ErrKindType:
		return "type mismatch"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so detailed errors built with
// Errorf still satisfy errors.Is against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// TagError reports a node tag byte the decoder does not recognize.
type TagError struct {
	Tag    uint8
	Offset int // byte offset the tag was read from
}

func (e *TagError) Error() string {
	return fmt.Sprintf("unsupported node tag 0x%02X at offset 0x%X", e.Tag, e.Offset)
}

// Is reports true for ErrUnsupportedNodeTag.
func (e *TagError) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == ErrKindUnsupportedNodeTag
}

// Sentinels commonly returned by implementations.
var (
	// ErrInvalidMagic indicates the buffer lacks the "BY" signature.
	ErrInvalidMagic = &Error{Kind: ErrKindInvalidMagic, Msg: "not a BYAML file (bad magic)"}
	// ErrUnsupportedVersion indicates a header version other than 1.
	ErrUnsupportedVersion = &Error{Kind: ErrKindUnsupportedVersion, Msg: "unsupported BYAML version"}
	// ErrOutOfBounds indicates a read or seek past the end of the buffer.
	ErrOutOfBounds = &Error{Kind: ErrKindOutOfBounds, Msg: "out of bounds"}
	// ErrUnsupportedNodeTag indicates an unrecognized node tag byte.
	ErrUnsupportedNodeTag = &Error{Kind: ErrKindUnsupportedNodeTag, Msg: "unsupported node tag"}
	// ErrIndexOutOfRange indicates a pool index beyond the pool length.
	ErrIndexOutOfRange = &Error{Kind: ErrKindIndexOutOfRange, Msg: "pool index out of range"}
	// ErrCorrupt indicates non-recoverable structural inconsistency.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt BYAML structure"}
	// ErrNotFound indicates a missing key or index.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrTypeMismatch indicates a node of a different type than requested.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "node has different type"}
)
