package article

import "strings"

// SanitizeLatin1 drops runes outside the Latin-1 range. The PDF writer's core
// fonts only cover cp1252, and some backends choke on exotic codepoints, so
// content is narrowed before it goes anywhere downstream.
func SanitizeLatin1(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= 0xFF {
			b.WriteRune(r)
		}
	}
	return b.String()
}
