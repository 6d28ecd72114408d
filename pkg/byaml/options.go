package byaml

import (
	"log/slog"

	"github.com/joshuapare/byamlkit/internal/strenc"
	"github.com/joshuapare/byamlkit/pkg/types"
)

// StringEncoding selects how name and string tables are encoded.
type StringEncoding = strenc.Encoding

const (
	UTF8        = strenc.UTF8
	ShiftJIS    = strenc.ShiftJIS
	Windows1252 = strenc.Windows1252
)

// ParseStringEncoding maps names like "utf-8" or "shift-jis" to a StringEncoding.
func ParseStringEncoding(name string) (StringEncoding, error) {
	return strenc.Parse(name)
}

// Limits caps decode work (re-exported for convenience).
type Limits = types.Limits

// DefaultLimits bounds depth and counts and leaves strings unbounded, so
// anything Encode writes decodes again.
func DefaultLimits() Limits { return types.DefaultLimits() }

// RelaxedLimits allows deeper trees than DefaultLimits.
func RelaxedLimits() Limits { return types.RelaxedLimits() }

// StrictLimits caps depth, counts and string length for untrusted input.
func StrictLimits() Limits { return types.StrictLimits() }

// Options controls decoding.
type Options struct {
	// StringEncoding is the encoding of the name and string pools.
	// Default: UTF8
	StringEncoding StringEncoding

	// Limits bounds nesting depth, container counts and string length.
	// Zero depth and count fall back to DefaultLimits(); a zero string
	// length leaves strings unbounded.
	Limits Limits

	// Logger receives debug events while decoding. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns UTF-8 tables, default limits and no logging.
func DefaultOptions() Options {
	return Options{
		StringEncoding: UTF8,
		Limits:         types.DefaultLimits(),
	}
}

// EncodeOptions controls encoding.
type EncodeOptions struct {
	// StringEncoding is the encoding of the name and string pools.
	// Default: UTF8
	StringEncoding StringEncoding

	// SortKeys writes dictionary entries in name-pool order (byte order of
	// the encoded name), which is what game readers binary-search. When
	// false, entries keep the tree's order so a decode reproduces it.
	SortKeys bool

	// Logger receives debug events while encoding. Nil discards them.
	Logger *slog.Logger
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
