package application

import (
	"context"
	"errors"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

// ErrNoInput is returned when a request supplies neither a subject nor a
// condition. It is the only validation error the analyzer produces.
var ErrNoInput = errors.New("analysis requires a drug name, a condition, or both")

// Request carries the caller's inputs for one analysis run.
type Request struct {
	// Drug is the medicine or ingredient name. May be empty when only a
	// condition is supplied.
	Drug string `json:"drug"`

	// Condition is the target disease or indication. May be empty when
	// only a drug is supplied.
	Condition string `json:"condition"`

	// IngredientMode asks for composition analysis of the drug instead
	// of a repurposing assessment.
	IngredientMode bool `json:"ingredient_mode"`
}

// Result is the analyzer's complete output: the detected case, the
// pooled evidence, run metadata, the score breakdown, and the decision.
type Result struct {
	Subject   string                `json:"subject"`
	Condition string                `json:"condition,omitempty"`
	Evidence  domain.EvidencePool   `json:"evidence"`
	Summary   domain.RunSummary     `json:"summary"`
	Breakdown domain.ScoreBreakdown `json:"breakdown"`
	Decision  domain.Decision       `json:"decision"`

	// Narrative is an optional prose executive summary. Empty when no
	// narrator is configured or the narrator failed.
	Narrative string `json:"narrative,omitempty"`
}

// Analyzer is the facade over the full pipeline: classify, collect,
// score, decide, and optionally narrate. It owns no policy of its own;
// each stage is delegated to its engine.
type Analyzer struct {
	orchestrator *Orchestrator
	scoring      *ScoringEngine
	decisions    *DecisionEngine
	narrator     ports.Narrator
}

// AnalyzerOption configures optional analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithNarrator attaches an optional narrative summarizer.
func WithNarrator(narrator ports.Narrator) AnalyzerOption {
	return func(a *Analyzer) { a.narrator = narrator }
}

// NewAnalyzer wires the pipeline stages together.
func NewAnalyzer(orchestrator *Orchestrator, opts ...AnalyzerOption) *Analyzer {
	analyzer := &Analyzer{
		orchestrator: orchestrator,
		scoring:      NewScoringEngine(),
		decisions:    NewDecisionEngine(),
	}
	for _, opt := range opts {
		opt(analyzer)
	}
	return analyzer
}

// RunAnalysis executes one end-to-end analysis. Collector failures never
// fail the run; they degrade the evidence pool and are reflected in the
// summary, the confidence value, and the risk factors. The only error is
// ErrNoInput for a fully-empty request.
func (a *Analyzer) RunAnalysis(ctx context.Context, req Request) (Result, error) {
	subject := normalize(req.Drug)
	condition := normalize(req.Condition)
	if subject == "" && condition == "" {
		return Result{}, ErrNoInput
	}

	pool, summary := a.orchestrator.Orchestrate(ctx, subject, condition, req.IngredientMode)
	breakdown := a.scoring.Score(pool, summary)
	decision := a.decisions.Decide(breakdown, pool, summary)

	result := Result{
		Subject:   subject,
		Condition: condition,
		Evidence:  pool,
		Summary:   summary,
		Breakdown: breakdown,
		Decision:  decision,
	}

	if a.narrator != nil {
		// Narration is best effort. A narrator fault leaves the
		// deterministic recommendation text as the summary.
		if narrative, err := a.narrator.Summarize(ctx, subject, condition, breakdown, decision); err == nil {
			result.Narrative = narrative
		}
	}
	return result, nil
}
