package resume

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DetectName picks the candidate's name among the leading non-empty lines: a short
// title-cased line of 2 to 4 words that is neither contact data nor a document header.
func DetectName(lines []string, rules *Rules) string {
	limit := rules.NameScanLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		if isNameLine(line, rules) {
			return line
		}
	}
	return ""
}

func isNameLine(line string, rules *Rules) bool {
	if utf8.RuneCountInString(line) > rules.MaxNameLength {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	if looksLikeContact(line) {
		return false
	}
	lower := strings.ToLower(line)
	for _, kw := range rules.NameExcludes {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}
