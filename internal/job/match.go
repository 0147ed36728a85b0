package job

import "time"

// ScoreBreakdown details how a match score is composed. The four fields
// always sum to the MatchResult total within rounding tolerance.
type ScoreBreakdown struct {
	CategoryScore   float64 `json:"category_score"`   // 0-30
	ExperienceScore float64 `json:"experience_score"` // 0-20
	LocationScore   float64 `json:"location_score"`   // 0-10
	EmbeddingScore  float64 `json:"embedding_score"`  // 0-40
}

// RuleScore is the subtotal of the rule-based terms, before embeddings.
func (b ScoreBreakdown) RuleScore() float64 {
	return b.CategoryScore + b.ExperienceScore + b.LocationScore
}

// Sum returns the full score including the embedding term.
func (b ScoreBreakdown) Sum() float64 {
	return b.RuleScore() + b.EmbeddingScore
}

// MatchResult is a scored profile-posting pair. Results are constructed
// once per matching run and never mutated afterwards.
type MatchResult struct {
	ProfileID     string         `json:"profile_id"`
	JobID         string         `json:"job_id"`
	TotalScore    float64        `json:"total_score"`
	Breakdown     ScoreBreakdown `json:"score_breakdown"`
	MatchedSkills []string       `json:"matched_skills,omitempty"`
	MissingSkills []string       `json:"missing_skills,omitempty"`
	MatchedAt     time.Time      `json:"matched_at"`
}
