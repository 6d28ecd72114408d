package types

// ============================================================================
// Decode Limits Constants
// ============================================================================
// The format itself bounds container sizes through its 24-bit count field.
// The remaining limits are practical caps on how much work a single file may
// make the decoder do.

const (
	// MaxFormatCount is the largest element count a container header can hold.
	MaxFormatCount = 0x00FFFFFF

	// MaxDepthPractical is the default nesting limit. Real course and object
	// files rarely nest deeper than a dozen levels.
	MaxDepthPractical = 256

	// MaxDepthDeep allows unusually deep trees.
	MaxDepthDeep = 1024

	// MaxDepthShallow is a conservative limit for untrusted input.
	MaxDepthShallow = 64

	// MaxStringLenLarge caps a single NUL-terminated string (64 KB) under
	// strict limits.
	MaxStringLenLarge = 64 << 10

	// StrictCountDivisor derives the strict container count from the format maximum.
	StrictCountDivisor = 256
)

// Limits caps the resources a decode may consume. Zero MaxDepth and
// MaxCount fall back to DefaultLimits.
type Limits struct {
	// MaxDepth is the deepest container nesting accepted. Offset cycles in
	// a malformed file show up as unbounded depth and are cut off here.
	MaxDepth int

	// MaxCount is the largest element count accepted for one container.
	MaxCount int

	// MaxStringLen is the longest NUL-terminated string accepted, in bytes.
	// Zero leaves strings bounded only by the buffer, matching what the
	// encoder writes.
	MaxStringLen int
}

// DefaultLimits returns limits suitable for all real-world files.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth: MaxDepthPractical,
		MaxCount: MaxFormatCount,
	}
}

// RelaxedLimits returns more permissive limits for unusual generated files.
func RelaxedLimits() Limits {
	return Limits{
		MaxDepth: MaxDepthDeep,
		MaxCount: MaxFormatCount,
	}
}

// StrictLimits returns conservative limits for untrusted input.
func StrictLimits() Limits {
	return Limits{
		MaxDepth:     MaxDepthShallow,
		MaxCount:     MaxFormatCount / StrictCountDivisor,
		MaxStringLen: MaxStringLenLarge,
	}
}

// WithDefaults fills zero depth and count fields from DefaultLimits.
func (l Limits) WithDefaults() Limits {
	d := DefaultLimits()
	if l.MaxDepth <= 0 {
		l.MaxDepth = d.MaxDepth
	}
	if l.MaxCount <= 0 {
		l.MaxCount = d.MaxCount
	}
	if l.MaxStringLen < 0 {
		l.MaxStringLen = 0
	}
	return l
}
