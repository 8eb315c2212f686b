package application

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/chiku1101/druggs/internal/domain"
)

// Category weights for the full five-collector case. They sum to exactly
// 100; clinical trial evidence carries the most weight because it is the
// strongest repurposing signal.
var defaultWeights = map[domain.CollectorID]int{
	domain.CollectorLiterature: 25,
	domain.CollectorTrials:     30,
	domain.CollectorPatents:    10,
	domain.CollectorRegulatory: 20,
	domain.CollectorMarket:     15,
}

// Collectors whose failure halves trust in the result. A run missing
// literature or trial evidence can still score, but its confidence is
// penalized.
var criticalCollectors = map[domain.CollectorID]bool{
	domain.CollectorLiterature: true,
	domain.CollectorTrials:     true,
}

const criticalFailurePenalty = 0.7

// ScoringEngine converts a pooled-evidence structure into per-category
// scores, an overall weighted score, and a confidence value. Score is a
// pure, deterministic, total function: identical pools and summaries
// always yield identical breakdowns, and no input can make it fail.
type ScoringEngine struct {
	weights map[domain.CollectorID]int
}

// NewScoringEngine returns an engine using the default category weights.
func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{weights: defaultWeights}
}

// Score computes the breakdown for the pool. Only the pool's required
// categories contribute; their weights are renormalized so the applied
// weights always sum to exactly 100 regardless of the case.
func (e *ScoringEngine) Score(pool domain.EvidencePool, summary domain.RunSummary) domain.ScoreBreakdown {
	weights := e.renormalizedWeights(pool.Required)

	categories := make(map[domain.CollectorID]int, len(pool.Required))
	for _, id := range pool.Required {
		categories[id] = e.scoreCategory(id, pool, summary)
	}

	weighted := 0.0
	for id, score := range categories {
		weighted += float64(weights[id]) / 100 * float64(score)
	}

	return domain.ScoreBreakdown{
		Categories: categories,
		Weights:    weights,
		Overall:    clamp(int(math.Round(weighted)), 0, 100),
		Confidence: confidence(summary),
	}
}

// renormalizedWeights scales the default weights of the collected subset
// so they sum to exactly 100, distributing rounding remainders to the
// categories with the largest fractional parts (ties broken by canonical
// collector order for determinism).
func (e *ScoringEngine) renormalizedWeights(required []domain.CollectorID) map[domain.CollectorID]int {
	total := 0
	for _, id := range required {
		total += e.weights[id]
	}
	weights := make(map[domain.CollectorID]int, len(required))
	if total == 0 {
		return weights
	}

	type remainder struct {
		id       domain.CollectorID
		fraction float64
		order    int
	}
	remainders := make([]remainder, 0, len(required))
	sum := 0
	for _, id := range required {
		exact := float64(e.weights[id]) * 100 / float64(total)
		floor := int(exact)
		weights[id] = floor
		sum += floor
		remainders = append(remainders, remainder{id, exact - float64(floor), canonicalOrder(id)})
	}
	sort.Slice(remainders, func(i, j int) bool {
		if remainders[i].fraction != remainders[j].fraction {
			return remainders[i].fraction > remainders[j].fraction
		}
		return remainders[i].order < remainders[j].order
	})
	for i := 0; sum < 100 && i < len(remainders); i++ {
		weights[remainders[i].id]++
		sum++
	}
	return weights
}

func canonicalOrder(id domain.CollectorID) int {
	for i, candidate := range domain.AllCollectors {
		if candidate == id {
			return i
		}
	}
	return len(domain.AllCollectors)
}

func (e *ScoringEngine) scoreCategory(id domain.CollectorID, pool domain.EvidencePool, summary domain.RunSummary) int {
	collected := summary.SucceededFor(id)
	switch id {
	case domain.CollectorLiterature:
		return scoreLiterature(pool.Literature, collected)
	case domain.CollectorTrials:
		return scoreTrials(pool.Trials, collected)
	case domain.CollectorPatents:
		return scorePatents(pool.Patents, collected)
	case domain.CollectorRegulatory:
		return scoreRegulatory(pool.Regulatory, collected)
	case domain.CollectorMarket:
		return scoreMarket(pool.Market, collected)
	default:
		return 0
	}
}

// scoreLiterature rises with the count and relevance of found papers and
// floors at a low baseline when the collector failed or found nothing.
func scoreLiterature(evidence domain.LiteratureEvidence, collected bool) int {
	if !collected {
		return 20
	}
	if len(evidence.Papers) == 0 {
		return 30
	}

	total := 0
	for _, paper := range evidence.Papers {
		total += paper.Relevance
	}
	avgRelevance := float64(total) / float64(len(evidence.Papers))

	score := 30.0
	score += math.Min(30, float64(len(evidence.Papers))*5)
	score += (avgRelevance - 50) * 0.8
	return clamp(int(math.Round(score)), 20, 100)
}

// scoreTrials rewards higher trial phases and active/recruiting status,
// with a bonus once multiple trials are found. A documented existing
// approval for the condition floors the score at 90; a trial portfolio
// that already scores higher keeps its score.
func scoreTrials(evidence domain.TrialsEvidence, collected bool) int {
	if !collected {
		return 20
	}

	score := 30
	for _, trial := range evidence.Trials {
		phase := strings.ToLower(trial.Phase)
		switch {
		case strings.Contains(phase, "phase 3") || strings.Contains(phase, "phase3"):
			score += 20
		case strings.Contains(phase, "phase 2") || strings.Contains(phase, "phase2"):
			score += 15
		case strings.Contains(phase, "phase 1") || strings.Contains(phase, "phase1"):
			score += 8
		}

		status := strings.ToLower(trial.Status)
		switch {
		case strings.Contains(status, "recruiting"):
			score += 5
		case strings.Contains(status, "active"):
			score += 8
		}
	}

	switch {
	case len(evidence.Trials) >= 3:
		score += 15
	case len(evidence.Trials) == 2:
		score += 10
	}

	if evidence.AlreadyApproved && score < 90 {
		score = 90
	}
	return clamp(score, 20, 100)
}

// scorePatents rewards patent count and granted (vs pending) status. An
// empty landscape is scored slightly above failure: no patents can also
// mean open opportunity.
func scorePatents(evidence domain.PatentEvidence, collected bool) int {
	if !collected {
		return 30
	}
	if len(evidence.Patents) == 0 {
		return 35
	}

	score := 40
	score += minInt(30, len(evidence.Patents)*5)
	for _, patent := range evidence.Patents {
		if strings.EqualFold(patent.Status, "granted") {
			score += 5
		}
	}
	return clamp(score, 30, 100)
}

// scoreRegulatory rewards prior approval of the subject for any
// indication and further rewards an abbreviated 505(b)(2) pathway.
func scoreRegulatory(evidence domain.RegulatoryEvidence, collected bool) int {
	if !collected {
		return 40
	}

	score := 50
	if evidence.Approved {
		score += 30
	} else {
		score += 10
	}
	if strings.Contains(evidence.Pathway.Name, "505(b)(2)") {
		score += 15
	}
	return clamp(score, 40, 100)
}

// scoreMarket rewards larger estimated market size, higher unmet need,
// and lower competition. Size strings it cannot parse stay neutral.
func scoreMarket(evidence domain.MarketEvidence, collected bool) int {
	if !collected {
		return 50
	}

	score := 50
	if billions, ok := parseMarketSize(evidence.MarketSize); ok {
		switch {
		case billions > 50:
			score += 20
		case billions > 10:
			score += 15
		default:
			score += 8
		}
	}

	unmetNeed := strings.ToLower(evidence.UnmetNeed)
	switch {
	case strings.Contains(unmetNeed, "high"):
		score += 15
	case strings.Contains(unmetNeed, "moderate"):
		score += 8
	}

	if strings.Contains(strings.ToLower(evidence.Competition), "low") {
		score += 10
	}
	return clamp(score, 50, 100)
}

// parseMarketSize extracts a dollar figure in billions from strings like
// "$4.2B" or "$230B". Returns false for anything it cannot parse.
func parseMarketSize(size string) (float64, bool) {
	size = strings.TrimSpace(size)
	if !strings.HasPrefix(size, "$") {
		return 0, false
	}
	trimmed := strings.TrimPrefix(size, "$")

	unit := 1.0
	switch {
	case strings.HasSuffix(trimmed, "B"):
		trimmed = strings.TrimSuffix(trimmed, "B")
	case strings.HasSuffix(trimmed, "M"):
		trimmed = strings.TrimSuffix(trimmed, "M")
		unit = 1.0 / 1000
	}
	// Ranges like "2-10" report their lower bound.
	if idx := strings.IndexAny(trimmed, "-–"); idx > 0 {
		trimmed = trimmed[:idx]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil {
		return 0, false
	}
	return value * unit, true
}

// confidence is the fraction of required collectors that succeeded,
// multiplied by 0.7 when a critical collector failed. It is
// informational only and never alters the overall score.
func confidence(summary domain.RunSummary) float64 {
	if len(summary.Runs) == 0 {
		return 0
	}
	value := float64(summary.Succeeded) / float64(len(summary.Runs))
	for _, run := range summary.Runs {
		if !run.Success && criticalCollectors[run.Collector] {
			value *= criticalFailurePenalty
			break
		}
	}
	return math.Round(value*100) / 100
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
