package render

import (
	"strconv"
	"strings"
)

// EscapeMarkup rewrites s so that a markdown renderer shows it as literal
// text. ASCII punctuation and leading indentation become numeric character
// references, which glamour turns back into the original characters after
// parsing. HTML tags, emphasis markers, headings, lists and code blocks in s
// are therefore displayed as typed instead of being interpreted.
func EscapeMarkup(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lineStart := true
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteRune(r)
			lineStart = true
			continue
		case lineStart && (r == ' ' || r == '\t'):
			writeCharRef(&b, r)
			continue
		case isASCIIPunct(r):
			writeCharRef(&b, r)
		default:
			b.WriteRune(r)
		}
		lineStart = false
	}
	return b.String()
}

func writeCharRef(b *strings.Builder, r rune) {
	b.WriteString("&#")
	b.WriteString(strconv.Itoa(int(r)))
	b.WriteByte(';')
}

func isASCIIPunct(r rune) bool {
	return (r >= '!' && r <= '/') || (r >= ':' && r <= '@') ||
		(r >= '[' && r <= '`') || (r >= '{' && r <= '~')
}
