// Package ports defines the interfaces that form the contract between
// the application core and the infrastructure layer. These interfaces
// enable dependency inversion and make the pipeline testable without
// network access.
package ports

import (
	"context"
	"time"

	"github.com/chiku1101/druggs/internal/domain"
)

// Collector produces one category of evidence for a subject/condition
// pair. Implementations must be stateless and safe for concurrent use;
// the orchestrator runs collectors for independent categories in
// parallel. Collectors should respect context cancellation and return
// promptly when their deadline fires; the runner discards partial work
// on timeout.
//
// A collector that finds nothing returns an empty evidence record and a
// nil error; errors are reserved for genuine faults (upstream outage,
// parse failure). Retries, if any, are the collector's own concern: the
// runner never retries.
type Collector interface {
	// ID returns the evidence category this collector serves.
	ID() domain.CollectorID

	// Timeout returns the per-run time budget for this collector.
	// Network-backed collectors carry larger budgets than table-backed
	// ones.
	Timeout() time.Duration

	// Execute gathers this collector's evidence for the pair. Either of
	// subject and condition may be empty depending on the case.
	Execute(ctx context.Context, subject, condition string) (domain.CategoryEvidence, error)
}

// Middleware wraps a Collector with cross-cutting behavior (metrics,
// tracing, logging) without the collector knowing. Middlewares compose:
// Chain(m1, m2)(c) applies m1 outermost.
type Middleware func(Collector) Collector

// Chain composes middlewares into one, first argument outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(c Collector) Collector {
		for i := len(middlewares) - 1; i >= 0; i-- {
			c = middlewares[i](c)
		}
		return c
	}
}

// ReferenceStore is the injected read-only lookup over the canonical
// medicine dataset. A missing subject is a normal outcome: Lookup
// returns a zero record and found=false, not an error.
type ReferenceStore interface {
	// Lookup resolves a subject name, tolerating minor spelling
	// differences, to its canonical record.
	Lookup(ctx context.Context, name string) (record domain.ReferenceRecord, found bool, err error)

	// SearchByIndication returns records whose documented indications
	// match the given condition.
	SearchByIndication(ctx context.Context, condition string, limit int) ([]domain.ReferenceRecord, error)

	// SuggestNames returns canonical names starting with the given
	// prefix, for autocomplete surfaces.
	SuggestNames(ctx context.Context, prefix string, limit int) ([]string, error)

	// SuggestIndications returns known indications starting with the
	// given prefix, for autocomplete surfaces.
	SuggestIndications(ctx context.Context, prefix string, limit int) ([]string, error)
}
