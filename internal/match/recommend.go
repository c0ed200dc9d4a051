package match

import "strings"

const recommendationWindow = 5

type recommendationRule struct {
	terms  []string
	advice string
}

var recommendationRules = []recommendationRule{
	{[]string{"skill"}, "Focus on adding relevant technical skills mentioned in the job description"},
	{[]string{"experience"}, "Highlight relevant work experience that matches job requirements"},
	{[]string{"degree", "education", "qualification"}, "Ensure your educational qualifications are clearly listed"},
	{[]string{"certification"}, "Add relevant certifications that align with job requirements"},
}

var generalRecommendations = []string{
	"Incorporate industry-specific terminology from the job description",
	"Highlight quantifiable achievements that demonstrate required skills",
	"Align your technical skills section with the required technologies",
	"Use specific keywords from the job description in your experience section",
}

// Recommend returns category advice triggered by the top ranked missing keywords,
// followed by the general recommendations.
func Recommend(rankedMissing []string) []string {
	top := rankedMissing
	if len(top) > recommendationWindow {
		top = top[:recommendationWindow]
	}

	out := make([]string, 0, len(recommendationRules)+len(generalRecommendations))
	for _, rule := range recommendationRules {
		if anyContains(top, rule.terms) {
			out = append(out, rule.advice)
		}
	}
	return append(out, generalRecommendations...)
}

func anyContains(keywords, terms []string) bool {
	for _, k := range keywords {
		lower := strings.ToLower(k)
		for _, t := range terms {
			if strings.Contains(lower, t) {
				return true
			}
		}
	}
	return false
}
