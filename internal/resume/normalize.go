package resume

import (
	"regexp"
	"strings"
	"unicode"
)

var horizontalSpace = regexp.MustCompile(`[\t\p{Zs}]+`)

// Normalize cleans raw extracted text while keeping its line structure.
// Null bytes and other control characters (except tab and newline) are dropped and
// line endings are unified to "\n". Whitespace-only input yields "".
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// collapseSpaces squeezes runs of horizontal whitespace into single spaces on every
// line and trims each line. Newlines survive.
func collapseSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(horizontalSpace.ReplaceAllString(l, " "))
	}
	return strings.Join(lines, "\n")
}

// nonEmptyLines returns the trimmed lines of s that contain anything.
func nonEmptyLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
