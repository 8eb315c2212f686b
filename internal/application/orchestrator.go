package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

// Orchestrator drives one analysis run: it asks the case router which
// collectors are required, fans them out concurrently through the
// runner, waits for all of them to settle, and folds the envelopes into
// an evidence pool plus a run summary.
//
// The fan-in needs no locking: each collector writes a distinct envelope
// slot indexed by launch position, and the fold runs only after every
// runner has settled.
type Orchestrator struct {
	collectors map[domain.CollectorID]ports.Collector
	runner     *Runner
}

// NewOrchestrator builds an orchestrator over the given collector set.
// Every collector the case router can require must be present; a missing
// collector is a wiring bug surfaced at construction time.
func NewOrchestrator(collectors []ports.Collector) (*Orchestrator, error) {
	byID := make(map[domain.CollectorID]ports.Collector, len(collectors))
	for _, collector := range collectors {
		if collector == nil {
			return nil, fmt.Errorf("nil collector supplied")
		}
		id := collector.ID()
		if _, exists := byID[id]; exists {
			return nil, fmt.Errorf("duplicate collector for category %s", id)
		}
		byID[id] = collector
	}
	for _, required := range domain.AllCollectors {
		if _, ok := byID[required]; !ok {
			return nil, fmt.Errorf("no collector registered for category %s", required)
		}
	}
	return &Orchestrator{collectors: byID, runner: NewRunner()}, nil
}

// Orchestrate runs the required collectors for the classified case and
// returns the pooled evidence and run metadata. It never returns an
// error: a fully-failed run still yields a pool of neutral defaults and
// a summary marking every collector failed.
//
// There is no early exit on first failure or first success; the score
// depends on complete coverage, so the join waits for the full required
// set. A per-runner timeout cancels only that runner's collector call,
// never its siblings.
func (o *Orchestrator) Orchestrate(ctx context.Context, subject, condition string, ingredientMode bool) (domain.EvidencePool, domain.RunSummary) {
	classification := Classify(subject, condition, ingredientMode)

	envelopes := make([]domain.ResultEnvelope, len(classification.Required))
	started := time.Now()

	// Runners never return errors (the runner folds every outcome into
	// its envelope), so the group is used purely as a join-all.
	group, groupCtx := errgroup.WithContext(ctx)
	for i, id := range classification.Required {
		group.Go(func() error {
			envelopes[i] = o.runner.Run(groupCtx, o.collectors[id],
				classification.Subject, classification.Condition)
			return nil
		})
	}
	_ = group.Wait()

	pool := domain.NewEvidencePool(classification.Required)
	summary := domain.RunSummary{
		RunID:     uuid.NewString(),
		Case:      classification.Case,
		Required:  append([]domain.CollectorID(nil), classification.Required...),
		Runs:      make([]domain.CollectorRun, 0, len(envelopes)),
		StartedAt: started,
		Elapsed:   time.Since(started),
	}

	for _, envelope := range envelopes {
		pool.Absorb(envelope)
		summary.Runs = append(summary.Runs, domain.CollectorRun{
			Collector: envelope.Collector,
			Success:   envelope.Success,
			Error:     envelope.Error,
			ErrorKind: envelope.ErrorKind,
			Elapsed:   envelope.Elapsed,
		})
		if envelope.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	return pool, summary
}
