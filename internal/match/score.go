package match

import (
	"math"
	"strings"

	"resumatch/internal/tfidf"
)

const (
	resumeRow = 0
	jdRow     = 1
)

// fit builds the two-document space shared by scoring and gap ranking.
func fit(resumeKeywords, jdKeywords []string, maxFeatures int) *tfidf.Model {
	return tfidf.Fit([]string{
		strings.Join(resumeKeywords, " "),
		strings.Join(jdKeywords, " "),
	}, maxFeatures)
}

// Score returns the similarity of two keyword bags on a 0-100 scale with one decimal.
func Score(resumeKeywords, jdKeywords []string) float64 {
	if len(resumeKeywords) == 0 || len(jdKeywords) == 0 {
		return 0
	}
	return score(fit(resumeKeywords, jdKeywords, tfidf.DefaultMaxFeatures))
}

func score(m *tfidf.Model) float64 {
	s := math.Round(m.Cosine(resumeRow, jdRow)*1000) / 10
	return math.Max(0, math.Min(100, s))
}
