package match

import (
	"sort"
	"strings"

	"resumatch/internal/tfidf"
)

// Missing returns the JD keywords that are not a case-insensitive substring of any
// resume keyword, in extraction order.
func Missing(resumeKeywords, jdKeywords []string) []string {
	lowered := make([]string, len(resumeKeywords))
	for i, k := range resumeKeywords {
		lowered[i] = strings.ToLower(k)
	}

	missing := make([]string, 0, len(jdKeywords))
	for _, k := range jdKeywords {
		needle := strings.ToLower(k)
		found := false
		for _, r := range lowered {
			if strings.Contains(r, needle) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, k)
		}
	}
	return missing
}

// rank orders missing keywords by their weight in the JD row of m, heaviest first.
// Ties keep extraction order.
func rank(m *tfidf.Model, missing []string) []string {
	weights := make(map[string]float64, len(missing))
	for _, k := range missing {
		weights[k] = keywordWeight(m, k)
	}
	ranked := make([]string, len(missing))
	copy(ranked, missing)
	sort.SliceStable(ranked, func(i, j int) bool { return weights[ranked[i]] > weights[ranked[j]] })
	return ranked
}

// keywordWeight is the mean JD weight of the keyword's in-vocabulary terms, 0 when none.
func keywordWeight(m *tfidf.Model, keyword string) float64 {
	var sum float64
	var n int
	for _, term := range tfidf.Analyze(keyword) {
		if w, ok := m.Weight(jdRow, term); ok {
			sum += w
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Rank returns the missing JD keywords ordered by importance.
func Rank(resumeKeywords, jdKeywords []string) []string {
	return rank(fit(resumeKeywords, jdKeywords, tfidf.DefaultMaxFeatures), Missing(resumeKeywords, jdKeywords))
}
