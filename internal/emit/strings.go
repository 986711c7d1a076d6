package emit

import (
	"fmt"
	"strings"
)

// quoteString renders a decoded string value as the shorter of the two
// quoted forms.
func quoteString(value string) string {
	quote := byte('"')
	if strings.Count(value, `"`) > strings.Count(value, "'") {
		quote = '\''
	}

	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte(quote)
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == quote:
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
