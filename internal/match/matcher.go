// Package match scores a parsed resume against a job description and explains the gap.
package match

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resumatch/internal/model"
	"resumatch/internal/nlp"
	"resumatch/internal/tfidf"
)

// MaxMissingKeywords caps the missing keyword list of a result.
const MaxMissingKeywords = 15

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyInput   = fmt.Errorf("%w: empty input", ErrInvalidInput)
)

// matchSections feed the resume side of the comparison, in this order.
var matchSections = []model.SectionName{
	model.SectionSkills,
	model.SectionExperience,
	model.SectionEducation,
	model.SectionCertifications,
}

// Matcher compares resumes with job descriptions. It holds no per-call state and
// is safe for concurrent use.
type Matcher struct {
	extractor *Extractor
}

// NewMatcher returns a matcher extracting keywords through annotator.
func NewMatcher(annotator nlp.Annotator) *Matcher {
	return &Matcher{extractor: NewExtractor(annotator)}
}

// ResumeText joins the entries of the sections used for matching.
func ResumeText(record model.ResumeRecord) string {
	var parts []string
	for _, s := range matchSections {
		parts = append(parts, record.Section(s)...)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Match scores record against jd. It fails with ErrEmptyInput when either side has no
// text, and with the annotator's error when keyword extraction fails.
func (m *Matcher) Match(ctx context.Context, record model.ResumeRecord, jd string) (model.MatchResult, error) {
	resumeText := ResumeText(record)
	jd = strings.TrimSpace(jd)
	if resumeText == "" {
		return model.MatchResult{}, fmt.Errorf("%w: resume has no skills, experience, education or certifications", ErrEmptyInput)
	}
	if jd == "" {
		return model.MatchResult{}, fmt.Errorf("%w: job description is blank", ErrEmptyInput)
	}

	jdKeywords, err := m.extractor.Extract(ctx, jd)
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("job description keywords: %w", err)
	}
	resumeKeywords, err := m.extractor.Extract(ctx, resumeText)
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("resume keywords: %w", err)
	}

	result := model.MatchResult{MissingKeywords: []string{}}
	if len(resumeKeywords) > 0 && len(jdKeywords) > 0 {
		space := fit(resumeKeywords, jdKeywords, tfidf.DefaultMaxFeatures)
		result.MatchScore = score(space)
		result.MissingKeywords = rank(space, Missing(resumeKeywords, jdKeywords))
	} else {
		result.MissingKeywords = Missing(resumeKeywords, jdKeywords)
	}

	if len(result.MissingKeywords) > MaxMissingKeywords {
		result.MissingKeywords = result.MissingKeywords[:MaxMissingKeywords]
	}
	result.Recommendations = Recommend(result.MissingKeywords)
	return result, nil
}
