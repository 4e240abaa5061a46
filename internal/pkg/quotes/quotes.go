package quotes

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	quoteByte = '"'
	quoteStr  = string(quoteByte)
)

// WrapBytes returns a new slice wrapping the given s
// in quotes (") by making a copy.
func WrapBytes(s []byte) []byte {
	cp := make([]byte, len(s)+2)
	cp[0] = quoteByte
	copy(cp[1:], s)
	cp[len(s)+1] = quoteByte
	return cp
}

func WrapString(str string) string {
	return quoteStr + str + quoteStr
}

// QuoteString renders str as a GraphQL string value.
func QuoteString(str string) string {
	return WrapString(EscapeString(str))
}

// EscapeString escapes str for use inside a GraphQL string value.
func EscapeString(str string) string {
	var b strings.Builder
	b.Grow(len(str))
	for _, r := range str {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 || r == utf8.RuneError {
				b.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				b.WriteString(strings.Repeat("0", 4-len(hex)))
				b.WriteString(hex)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
