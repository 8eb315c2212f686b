package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

// Runner executes a collector under its time budget and converts every
// possible outcome (payload, collector-reported error, deadline, panic)
// into a uniform ResultEnvelope. The orchestrator therefore never
// branches on outcome type.
//
// The runner never retries; retries are the collector's own concern.
type Runner struct{}

// NewRunner returns a Runner. The type carries no state; it exists so
// middleware and tests can substitute execution policy at one seam.
func NewRunner() *Runner { return &Runner{} }

// Run invokes the collector's single operation under a deadline equal to
// its Timeout. The three terminal outcomes map to envelopes as follows:
// payload before the deadline → success; deadline first → failure with
// timeout kind, partial work discarded; any other fault → failure with
// fault kind carrying the fault's description.
func (r *Runner) Run(ctx context.Context, collector ports.Collector, subject, condition string) domain.ResultEnvelope {
	runCtx, cancel := context.WithTimeout(ctx, collector.Timeout())
	defer cancel()

	start := time.Now()
	payload, err := r.execute(runCtx, collector, subject, condition)
	elapsed := time.Since(start)

	envelope := domain.ResultEnvelope{
		Collector: collector.ID(),
		Elapsed:   elapsed,
	}

	switch {
	case err == nil:
		envelope.Success = true
		envelope.Payload = payload
	case errors.Is(err, context.DeadlineExceeded), errors.Is(runCtx.Err(), context.DeadlineExceeded):
		envelope.ErrorKind = domain.ErrorKindTimeout
		envelope.Error = fmt.Sprintf("%s timed out after %s",
			collector.ID().DisplayName(), collector.Timeout())
	default:
		envelope.ErrorKind = domain.ErrorKindFault
		envelope.Error = err.Error()
	}
	return envelope
}

// execute isolates the collector call so a panicking collector degrades
// to a fault envelope instead of tearing down sibling runners.
func (r *Runner) execute(ctx context.Context, collector ports.Collector, subject, condition string) (payload domain.CategoryEvidence, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			payload = nil
			err = ports.NewCollectorError(collector.ID(), "execute",
				fmt.Errorf("panic: %v", recovered))
		}
	}()
	return collector.Execute(ctx, subject, condition)
}
