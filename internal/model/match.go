package model

// MatchResult describes how well a resume aligns with a job description.
type MatchResult struct {
	MatchScore      float64  `json:"match_score"`
	MissingKeywords []string `json:"missing_keywords"`
	Recommendations []string `json:"recommendations"`
}
