package resume

import (
	"strings"
	"unicode/utf8"

	"resumatch/internal/model"
)

// CleanEntries trims entries, drops those of length one or less and removes
// case-insensitive duplicates, keeping the first occurrence in order.
func CleanEntries(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	var out []string
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if utf8.RuneCountInString(e) <= 1 {
			continue
		}
		key := strings.ToLower(e)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

// CleanSections applies CleanEntries to every section and drops sections left empty.
func CleanSections(sections map[model.SectionName][]string) map[model.SectionName][]string {
	out := make(map[model.SectionName][]string, len(sections))
	for name, entries := range sections {
		if cleaned := CleanEntries(entries); len(cleaned) > 0 {
			out[name] = cleaned
		}
	}
	return out
}
