package jinline

import "strings"

// Strip removes the control characters U+0000–U+0008, U+000B, U+000C,
// U+000E–U+001F and U+007F. Tab, newline and carriage return are kept.
// Every other byte, invalid UTF-8 included, is copied unchanged.
func Strip(raw string) string {
	i := strings.IndexFunc(raw, func(r rune) bool { return r < 0x80 && isStripped(byte(r)) })
	if i < 0 {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	b.WriteString(raw[:i])
	for j := i; j < len(raw); j++ {
		if c := raw[j]; !isStripped(c) {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// isStripped reports whether c is a removed control byte. Bytes of multi-byte
// sequences are all >= 0x80 and never match.
func isStripped(c byte) bool {
	switch {
	case c == '\t', c == '\n', c == '\r':
		return false
	case c < 0x20, c == 0x7f:
		return true
	}
	return false
}

// Sanitize strips control characters from raw, parses the remainder as JSON
// and re-serializes it with Format.
//
// When the stripped text does not parse, Sanitize returns raw itself, not the
// stripped variant, together with an *Error of kind KindMalformedJSON. The
// returned text is always safe to log.
func Sanitize(raw string) (string, error) {
	v, err := Parse([]byte(Strip(raw)))
	if err != nil {
		return raw, &Error{Kind: KindMalformedJSON, Op: "sanitize", Err: err}
	}
	b, err := Format(v)
	if err != nil {
		return raw, &Error{Kind: KindMalformedJSON, Op: "sanitize", Err: err}
	}
	return string(b), nil
}
