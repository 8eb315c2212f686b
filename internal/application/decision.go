package application

import (
	"fmt"
	"strings"

	"github.com/chiku1101/druggs/internal/domain"
)

// Verdict thresholds on the overall score. Fixed constants, not learned:
// >=70 GO, [50,70) CONSIDER, below NO_GO.
const (
	goThreshold       = 70
	considerThreshold = 50
)

// Score floors below which a category contributes a risk factor.
const (
	literatureRiskFloor = 40
	trialsRiskFloor     = 40
	regulatoryRiskFloor = 50
	confidenceRiskFloor = 0.6
)

var recommendations = map[domain.Verdict]string{
	domain.VerdictGo:       "PROCEED with drug repurposing program - Strong scientific and commercial case",
	domain.VerdictConsider: "CONSIDER with caution - Additional evidence and risk assessment needed",
	domain.VerdictNoGo:     "DO NOT PROCEED - Insufficient evidence and/or unfavorable risk-benefit profile",
}

// Next-step templates are selected by verdict alone, never by category
// scores.
var nextSteps = map[domain.Verdict][]string{
	domain.VerdictGo: {
		"1. Conduct regulatory pre-IND meeting with FDA",
		"2. Design Phase II clinical trial protocol",
		"3. Identify clinical trial sites and investigators",
		"4. Prepare IND application",
		"5. Launch clinical development program",
	},
	domain.VerdictConsider: {
		"1. Conduct additional literature review",
		"2. Engage clinical experts for consultation",
		"3. Evaluate patent landscape thoroughly",
		"4. Assess competitive landscape",
		"5. Consider pilot/feasibility studies before full development",
	},
	domain.VerdictNoGo: {
		"1. Identify evidence gaps that need to be addressed",
		"2. Monitor literature for new developments",
		"3. Consider alternative drug-condition combinations",
		"4. Re-evaluate if new evidence emerges",
	},
}

// DecisionEngine converts a score breakdown and its evidence pool into a
// verdict with ranked reasoning, risk factors, and recommended next
// actions. Decide is pure, deterministic, and total; there is no
// multi-round negotiation with the scoring engine.
type DecisionEngine struct{}

// NewDecisionEngine returns a DecisionEngine.
func NewDecisionEngine() *DecisionEngine { return &DecisionEngine{} }

// Decide renders the verdict for the breakdown.
func (e *DecisionEngine) Decide(breakdown domain.ScoreBreakdown, pool domain.EvidencePool, summary domain.RunSummary) domain.Decision {
	verdict := verdictFor(breakdown.Overall)
	return domain.Decision{
		Verdict:        verdict,
		Confidence:     confidenceLabel(breakdown.Confidence),
		Recommendation: recommendations[verdict],
		Reasoning:      e.buildReasoning(breakdown, pool),
		RiskFactors:    e.identifyRiskFactors(breakdown, summary),
		NextSteps:      append([]string(nil), nextSteps[verdict]...),
	}
}

func verdictFor(score int) domain.Verdict {
	switch {
	case score >= goThreshold:
		return domain.VerdictGo
	case score >= considerThreshold:
		return domain.VerdictConsider
	default:
		return domain.VerdictNoGo
	}
}

func confidenceLabel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "High"
	case confidence >= 0.6:
		return "Moderate"
	default:
		return "Low"
	}
}

// buildReasoning emits one sentence per collected category, in canonical
// order, each tiered by that category's score and citing a concrete fact
// from the pool where one is available.
func (e *DecisionEngine) buildReasoning(breakdown domain.ScoreBreakdown, pool domain.EvidencePool) []string {
	var reasoning []string
	for _, id := range domain.AllCollectors {
		score, collected := breakdown.CategoryScore(id)
		if !collected {
			continue
		}
		switch id {
		case domain.CollectorLiterature:
			switch {
			case score > 70:
				reasoning = append(reasoning, fmt.Sprintf(
					"Strong research evidence supporting repurposing (%d papers found)", len(pool.Literature.Papers)))
			case score > 50:
				reasoning = append(reasoning, "Moderate research evidence available")
			default:
				reasoning = append(reasoning, "Limited research evidence - further studies needed")
			}
		case domain.CollectorTrials:
			trialCount := len(pool.Trials.Trials)
			switch {
			case score > 70:
				reasoning = append(reasoning, fmt.Sprintf(
					"Strong clinical trial support (%d trials found)", trialCount))
			case score > 50:
				reasoning = append(reasoning, fmt.Sprintf(
					"Some clinical trial evidence (%d trials)", trialCount))
			default:
				reasoning = append(reasoning, "Limited clinical trial evidence - Phase I/II needed")
			}
		case domain.CollectorPatents:
			if score > 70 {
				reasoning = append(reasoning, "Patent landscape favorable for protection")
			} else {
				reasoning = append(reasoning, "Patent protection opportunities available")
			}
		case domain.CollectorRegulatory:
			if strings.Contains(pool.Regulatory.Pathway.Name, "505(b)(2)") {
				reasoning = append(reasoning, "FDA 505(b)(2) pathway available - expedited approval possible")
			} else {
				reasoning = append(reasoning, "Standard IND pathway required")
			}
		case domain.CollectorMarket:
			switch {
			case score > 70:
				reasoning = append(reasoning, "Strong market opportunity and commercial viability")
			case score > 50:
				reasoning = append(reasoning, "Moderate market opportunity")
			default:
				reasoning = append(reasoning, "Limited market opportunity - niche indication")
			}
		}
	}
	return reasoning
}

// identifyRiskFactors emits risks for low category scores and low
// confidence, plus one Low-severity entry per failed collector so the
// consumer always sees which sources are missing from the picture.
func (e *DecisionEngine) identifyRiskFactors(breakdown domain.ScoreBreakdown, summary domain.RunSummary) []domain.RiskFactor {
	var risks []domain.RiskFactor

	if score, ok := breakdown.CategoryScore(domain.CollectorLiterature); ok && score < literatureRiskFloor {
		risks = append(risks, domain.RiskFactor{
			Factor:     "Insufficient research evidence",
			Severity:   domain.SeverityHigh,
			Mitigation: "Conduct comprehensive literature review",
		})
	}
	if score, ok := breakdown.CategoryScore(domain.CollectorTrials); ok && score < trialsRiskFloor {
		risks = append(risks, domain.RiskFactor{
			Factor:     "No or limited clinical trial data",
			Severity:   domain.SeverityHigh,
			Mitigation: "Plan Phase II proof-of-concept trial",
		})
	}
	if score, ok := breakdown.CategoryScore(domain.CollectorRegulatory); ok && score < regulatoryRiskFloor {
		risks = append(risks, domain.RiskFactor{
			Factor:     "Unclear regulatory pathway",
			Severity:   domain.SeverityModerate,
			Mitigation: "Consult with FDA for guidance",
		})
	}
	if breakdown.Confidence < confidenceRiskFloor {
		risks = append(risks, domain.RiskFactor{
			Factor:     "Low data completeness",
			Severity:   domain.SeverityModerate,
			Mitigation: "Gather additional evidence",
		})
	}

	for _, failed := range summary.FailedCollectors() {
		risks = append(risks, domain.RiskFactor{
			Factor:     fmt.Sprintf("%s could not retrieve data", failed.DisplayName()),
			Severity:   domain.SeverityLow,
			Mitigation: "Use alternative data sources",
		})
	}
	return risks
}
