package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chiku1101/druggs/internal/domain"
)

// summaryFor builds a run summary where every listed category succeeded
// except those in failed.
func summaryFor(required []domain.CollectorID, failed ...domain.CollectorID) domain.RunSummary {
	failedSet := make(map[domain.CollectorID]bool, len(failed))
	for _, id := range failed {
		failedSet[id] = true
	}

	summary := domain.RunSummary{Required: required}
	for _, id := range required {
		success := !failedSet[id]
		summary.Runs = append(summary.Runs, domain.CollectorRun{Collector: id, Success: success})
		if success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary
}

func fullSet() []domain.CollectorID {
	return append([]domain.CollectorID(nil), domain.AllCollectors...)
}

func TestScoringEngine_WeightsSumToHundred(t *testing.T) {
	engine := NewScoringEngine()

	tests := []struct {
		name     string
		required []domain.CollectorID
	}{
		{"full set", fullSet()},
		{"reduced set", []domain.CollectorID{domain.CollectorLiterature, domain.CollectorRegulatory}},
		{"single category", []domain.CollectorID{domain.CollectorTrials}},
		{"three categories", []domain.CollectorID{domain.CollectorLiterature, domain.CollectorTrials, domain.CollectorMarket}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weights := engine.renormalizedWeights(tt.required)
			total := 0
			for _, weight := range weights {
				total += weight
			}
			assert.Equal(t, 100, total)
			assert.Len(t, weights, len(tt.required))
		})
	}
}

func TestScoringEngine_FullSetKeepsDefaultWeights(t *testing.T) {
	weights := NewScoringEngine().renormalizedWeights(fullSet())

	assert.Equal(t, 25, weights[domain.CollectorLiterature])
	assert.Equal(t, 30, weights[domain.CollectorTrials])
	assert.Equal(t, 10, weights[domain.CollectorPatents])
	assert.Equal(t, 20, weights[domain.CollectorRegulatory])
	assert.Equal(t, 15, weights[domain.CollectorMarket])
}

func TestScoringEngine_ReducedSetRenormalization(t *testing.T) {
	// literature 25 and regulatory 20 scale to 55.55 and 44.44; the
	// rounding remainder goes to the larger fractional part.
	weights := NewScoringEngine().renormalizedWeights(
		[]domain.CollectorID{domain.CollectorLiterature, domain.CollectorRegulatory})

	assert.Equal(t, 56, weights[domain.CollectorLiterature])
	assert.Equal(t, 44, weights[domain.CollectorRegulatory])
}

func TestScoreLiterature(t *testing.T) {
	papers := func(relevances ...int) domain.LiteratureEvidence {
		evidence := domain.LiteratureEvidence{}
		for _, relevance := range relevances {
			evidence.Papers = append(evidence.Papers, domain.ResearchPaper{Relevance: relevance})
		}
		return evidence
	}

	tests := []struct {
		name      string
		evidence  domain.LiteratureEvidence
		collected bool
		want      int
	}{
		{"collector failed", domain.LiteratureEvidence{}, false, 20},
		{"no papers found", domain.LiteratureEvidence{}, true, 30},
		{"moderate evidence", papers(70, 80, 60, 90), true, 70},
		{"rich high-relevance evidence caps count bonus", papers(90, 90, 90, 90, 90, 90, 90, 90), true, 92},
		{"low relevance floors at twenty", papers(0), true, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreLiterature(tt.evidence, tt.collected))
		})
	}
}

func TestScoreTrials(t *testing.T) {
	tests := []struct {
		name      string
		evidence  domain.TrialsEvidence
		collected bool
		want      int
	}{
		{"collector failed", domain.TrialsEvidence{}, false, 20},
		{"already approved floors an empty portfolio", domain.TrialsEvidence{AlreadyApproved: true}, true, 90},
		{"no trials", domain.TrialsEvidence{}, true, 30},
		{
			"approval floors a weak portfolio",
			domain.TrialsEvidence{
				Trials:          []domain.ClinicalTrial{{Phase: "Phase 1", Status: "Completed"}},
				AlreadyApproved: true,
			},
			true,
			90,
		},
		{
			// The floor must never demote a portfolio that already scores
			// above it on phase and status alone.
			"approval does not cap a strong portfolio",
			domain.TrialsEvidence{
				Trials: []domain.ClinicalTrial{
					{Phase: "Phase 3", Status: "Active"},
					{Phase: "Phase 3", Status: "Active"},
					{Phase: "Phase 3", Status: "Active"},
				},
				AlreadyApproved: true,
			},
			true,
			100,
		},
		{
			"single phase 2 recruiting trial",
			domain.TrialsEvidence{Trials: []domain.ClinicalTrial{{Phase: "Phase 2", Status: "Recruiting"}}},
			true,
			50,
		},
		{
			// "Active, not recruiting" hits the recruiting branch by
			// substring; the plain "Active" bonus needs a status without
			// the word recruiting.
			"three strong trials",
			domain.TrialsEvidence{Trials: []domain.ClinicalTrial{
				{Phase: "Phase 3", Status: "Recruiting"},
				{Phase: "Phase 2", Status: "Active, not recruiting"},
				{Phase: "Phase 1", Status: "Completed"},
			}},
			true,
			98,
		},
		{
			"three strong active trials clamp at one hundred",
			domain.TrialsEvidence{Trials: []domain.ClinicalTrial{
				{Phase: "Phase 3", Status: "Active"},
				{Phase: "Phase 2", Status: "Active"},
				{Phase: "Phase 1", Status: "Active"},
			}},
			true,
			100,
		},
		{
			"two trials get the pair bonus",
			domain.TrialsEvidence{Trials: []domain.ClinicalTrial{
				{Phase: "Phase 1", Status: "Completed"},
				{Phase: "Not specified", Status: "Unknown"},
			}},
			true,
			48,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreTrials(tt.evidence, tt.collected))
		})
	}
}

func TestScorePatents(t *testing.T) {
	tests := []struct {
		name      string
		evidence  domain.PatentEvidence
		collected bool
		want      int
	}{
		{"collector failed", domain.PatentEvidence{}, false, 30},
		{"empty landscape scores above failure", domain.PatentEvidence{}, true, 35},
		{
			"three patents two granted",
			domain.PatentEvidence{Patents: []domain.Patent{
				{Status: "Granted"}, {Status: "Granted"}, {Status: "Pending"},
			}},
			true,
			65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scorePatents(tt.evidence, tt.collected))
		})
	}
}

func TestScoreRegulatory(t *testing.T) {
	tests := []struct {
		name      string
		evidence  domain.RegulatoryEvidence
		collected bool
		want      int
	}{
		{"collector failed", domain.RegulatoryEvidence{}, false, 40},
		{"not approved", domain.RegulatoryEvidence{}, true, 60},
		{"approved via full program", domain.RegulatoryEvidence{Approved: true}, true, 80},
		{
			"approved with abbreviated pathway",
			domain.RegulatoryEvidence{
				Approved: true,
				Pathway:  domain.RegulatoryPathway{Name: "505(b)(2) New Drug Application"},
			},
			true,
			95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreRegulatory(tt.evidence, tt.collected))
		})
	}
}

func TestScoreMarket(t *testing.T) {
	tests := []struct {
		name      string
		evidence  domain.MarketEvidence
		collected bool
		want      int
	}{
		{"collector failed", domain.MarketEvidence{}, false, 50},
		{"unparseable size stays neutral", domain.MarketEvidence{MarketSize: "To be determined"}, true, 50},
		{
			"niche favorable market",
			domain.MarketEvidence{MarketSize: "$4.2B", UnmetNeed: "High", Competition: "Low"},
			true,
			83,
		},
		{
			"large crowded market",
			domain.MarketEvidence{MarketSize: "$230B", UnmetNeed: "High", Competition: "High"},
			true,
			85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreMarket(tt.evidence, tt.collected))
		})
	}
}

func TestParseMarketSize(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"$4.2B", 4.2, true},
		{"$230B", 230, true},
		{"$500M", 0.5, true},
		{"$2-10B", 2, true},
		{"To be determined", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseMarketSize(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestScoringEngine_Confidence(t *testing.T) {
	tests := []struct {
		name   string
		failed []domain.CollectorID
		want   float64
	}{
		{"all succeeded", nil, 1.0},
		{"non-critical failure", []domain.CollectorID{domain.CollectorMarket}, 0.8},
		{"critical failure halves trust", []domain.CollectorID{domain.CollectorTrials}, 0.56},
		{"penalty applies once", []domain.CollectorID{domain.CollectorLiterature, domain.CollectorTrials}, 0.42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := summaryFor(fullSet(), tt.failed...)
			assert.InDelta(t, tt.want, confidence(summary), 1e-9)
		})
	}
}

func TestScoringEngine_Score_Deterministic(t *testing.T) {
	engine := NewScoringEngine()

	pool := domain.NewEvidencePool(fullSet())
	for _, id := range fullSet() {
		pool.Absorb(domain.ResultEnvelope{Collector: id, Success: true, Payload: goldenEvidence(id)})
	}
	summary := summaryFor(fullSet())

	first := engine.Score(pool, summary)
	second := engine.Score(pool, summary)
	assert.Equal(t, first, second)

	assert.Equal(t, 87, first.Overall)
	assert.InDelta(t, 1.0, first.Confidence, 1e-9)
}

// Strengthening the evidence for one category, holding every other
// category fixed, must never lower the overall score.
func TestScoringEngine_Score_MonotoneInEachCategory(t *testing.T) {
	engine := NewScoringEngine()
	summary := summaryFor(fullSet())

	// Each ladder runs from weakest to strongest evidence for its
	// category.
	ladders := map[domain.CollectorID][]domain.CategoryEvidence{
		domain.CollectorLiterature: {
			domain.LiteratureEvidence{},
			domain.LiteratureEvidence{Papers: []domain.ResearchPaper{{Relevance: 70}, {Relevance: 70}}},
			goldenEvidence(domain.CollectorLiterature),
		},
		domain.CollectorTrials: {
			domain.TrialsEvidence{},
			domain.TrialsEvidence{Trials: []domain.ClinicalTrial{{Phase: "Phase 1", Status: "Completed"}}},
			goldenEvidence(domain.CollectorTrials),
		},
		domain.CollectorPatents: {
			domain.PatentEvidence{},
			domain.PatentEvidence{Patents: []domain.Patent{{Status: "Granted"}}},
			goldenEvidence(domain.CollectorPatents),
		},
		domain.CollectorRegulatory: {
			domain.RegulatoryEvidence{},
			domain.RegulatoryEvidence{Approved: true},
			goldenEvidence(domain.CollectorRegulatory),
		},
		domain.CollectorMarket: {
			domain.MarketEvidence{},
			domain.MarketEvidence{MarketSize: "$4.2B"},
			goldenEvidence(domain.CollectorMarket),
		},
	}

	for id, ladder := range ladders {
		t.Run(string(id), func(t *testing.T) {
			previousCategory, previousOverall := -1, -1
			for _, step := range ladder {
				pool := domain.NewEvidencePool(fullSet())
				for _, other := range fullSet() {
					payload := goldenEvidence(other)
					if other == id {
						payload = step
					}
					pool.Absorb(domain.ResultEnvelope{Collector: other, Success: true, Payload: payload})
				}

				breakdown := engine.Score(pool, summary)
				category, ok := breakdown.CategoryScore(id)
				assert.True(t, ok)
				assert.GreaterOrEqual(t, category, previousCategory)
				assert.GreaterOrEqual(t, breakdown.Overall, previousOverall)
				previousCategory, previousOverall = category, breakdown.Overall
			}
		})
	}
}

func TestScoringEngine_Score_OnlyRequiredCategoriesContribute(t *testing.T) {
	engine := NewScoringEngine()
	required := []domain.CollectorID{domain.CollectorLiterature, domain.CollectorRegulatory}

	pool := domain.NewEvidencePool(required)
	pool.Absorb(domain.ResultEnvelope{
		Collector: domain.CollectorLiterature, Success: true,
		Payload: goldenEvidence(domain.CollectorLiterature),
	})
	pool.Absorb(domain.ResultEnvelope{
		Collector: domain.CollectorRegulatory, Success: true,
		Payload: goldenEvidence(domain.CollectorRegulatory),
	})

	breakdown := engine.Score(pool, summaryFor(required))

	assert.Len(t, breakdown.Categories, 2)
	_, hasTrials := breakdown.CategoryScore(domain.CollectorTrials)
	assert.False(t, hasTrials)

	// 92 at weight 56 plus 95 at weight 44.
	assert.Equal(t, 93, breakdown.Overall)
}
