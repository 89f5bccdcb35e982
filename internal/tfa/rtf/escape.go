package rtf

import "strings"

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"{", `\{`,
	"}", `\}`,
	"\r\n", `\par `,
	"\n", `\par `,
	"\r", `\par `,
	"\t", `\tab `,
)

// Escape makes arbitrary text safe for embedding in an RTF body. Backslashes
// and braces are backslash-escaped, line endings become paragraph breaks, and
// tabs become tab control words.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	return textEscaper.Replace(text)
}
