package domain

// ScoreResult is the personalization engine output. Score is always in
// [0, 100] after clamping; Reasons is never empty; Warnings is empty
// unless an allergen match fired.
type ScoreResult struct {
	Score    float64  `json:"suitability_score"`
	Reasons  []string `json:"reasons"`
	Warnings []string `json:"warnings"`
}
