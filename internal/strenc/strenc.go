// Package strenc converts between the raw bytes stored in BYAML string
// tables and Go strings.
//
// Wii U titles store UTF-8; older Japanese-first titles store Shift-JIS, and
// some PC-side tooling emits Windows-1252. The format itself does not record
// which, so the caller picks.
package strenc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// Encoding selects the byte encoding of string and name tables.
type Encoding int

const (
	// UTF8 passes bytes through unchanged.
	UTF8 Encoding = iota
	// ShiftJIS decodes and encodes Shift-JIS.
	ShiftJIS
	// Windows1252 decodes and encodes Windows-1252 (Latin-1 superset).
	Windows1252
)

// String implements the Stringer interface for Encoding.
func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case ShiftJIS:
		return "shift-jis"
	case Windows1252:
		return "windows-1252"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Parse maps a user-facing encoding name to an Encoding.
func Parse(name string) (Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "shift-jis", "shiftjis", "sjis":
		return ShiftJIS, nil
	case "windows-1252", "cp1252", "latin1":
		return Windows1252, nil
	default:
		return UTF8, fmt.Errorf("unknown string encoding %q", name)
	}
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case ShiftJIS:
		return japanese.ShiftJIS
	case Windows1252:
		return charmap.Windows1252
	default:
		return nil
	}
}

// Decode converts raw table bytes to a Go string.
func (e Encoding) Decode(raw []byte) (string, error) {
	// Fast path: ASCII is identical in every supported encoding
	if e == UTF8 || isASCII(raw) {
		return string(raw), nil
	}
	c := e.codec()
	if c == nil {
		return "", fmt.Errorf("strenc: unsupported encoding %v", e)
	}
	decoded, err := c.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("strenc: decode %v: %w", e, err)
	}
	return string(decoded), nil
}

// Encode converts a Go string to table bytes. The result never contains a
// zero byte; strings with an embedded NUL cannot be stored.
func (e Encoding) Encode(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, fmt.Errorf("strenc: string %q contains NUL", s)
	}
	if e == UTF8 || isASCII([]byte(s)) {
		return []byte(s), nil
	}
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("strenc: string %q is not valid UTF-8", s)
	}
	c := e.codec()
	if c == nil {
		return nil, fmt.Errorf("strenc: unsupported encoding %v", e)
	}
	encoded, err := c.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("strenc: encode %v: %w", e, err)
	}
	return encoded, nil
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
