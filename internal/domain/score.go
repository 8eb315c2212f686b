package domain

// ScoreBreakdown is the scoring engine's output: one 0-100 score per
// collected category, the weights actually applied (renormalized to sum
// to 100 over the collected subset), the overall weighted score, and an
// informational confidence value.
type ScoreBreakdown struct {
	// Categories maps each collected category to its 0-100 score.
	// Categories outside the required set are absent.
	Categories map[CollectorID]int `json:"categories"`

	// Weights maps each collected category to the integer weight applied
	// to it. Weights always sum to exactly 100.
	Weights map[CollectorID]int `json:"weights"`

	// Overall is round(sum(weight/100 * score)) and lies in [0,100].
	Overall int `json:"overall"`

	// Confidence is the fraction of required collectors that succeeded,
	// multiplied by 0.7 when a critical collector (literature, trials)
	// failed. It is informational and never alters Overall.
	Confidence float64 `json:"confidence"`
}

// CategoryScore returns the score for a category and whether it was
// collected.
func (b ScoreBreakdown) CategoryScore(id CollectorID) (int, bool) {
	score, ok := b.Categories[id]
	return score, ok
}
