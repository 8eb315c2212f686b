package domain

// Verdict is the final categorical recommendation. Verdicts are ordered:
// GO > CONSIDER > NO_GO.
type Verdict string

const (
	// VerdictGo recommends proceeding with the repurposing program.
	VerdictGo Verdict = "GO"

	// VerdictConsider recommends proceeding only with further validation.
	VerdictConsider Verdict = "CONSIDER"

	// VerdictNoGo recommends against proceeding on current evidence.
	VerdictNoGo Verdict = "NO_GO"
)

// Severity grades a risk factor.
type Severity string

const (
	SeverityHigh     Severity = "High"
	SeverityModerate Severity = "Moderate"
	SeverityLow      Severity = "Low"
)

// RiskFactor is one identified risk with a templated mitigation.
type RiskFactor struct {
	Factor     string   `json:"factor"`
	Severity   Severity `json:"severity"`
	Mitigation string   `json:"mitigation"`
}

// Decision is the decision engine's output: the verdict plus everything
// needed to explain and act on it. It is derived purely from the score
// breakdown, the evidence pool, and the run summary.
type Decision struct {
	Verdict Verdict `json:"verdict"`

	// Confidence is a label derived from the breakdown's confidence
	// value ("High", "Moderate", "Low").
	Confidence string `json:"confidence"`

	// Recommendation is the one-line human-readable summary of the
	// verdict.
	Recommendation string `json:"recommendation"`

	// Reasoning holds one sentence per collected category, each derived
	// from that category's score and, where available, a concrete fact
	// from the pool.
	Reasoning []string `json:"reasoning"`

	// RiskFactors lists risks triggered by low category scores, low
	// confidence, and failed collectors.
	RiskFactors []RiskFactor `json:"risk_factors"`

	// NextSteps is the fixed ordered action template for the verdict.
	NextSteps []string `json:"next_steps"`
}
