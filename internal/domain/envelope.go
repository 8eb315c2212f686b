package domain

import "time"

// ErrorKind distinguishes the two recoverable failure classes a runner
// can report. Both are folded into neutral defaults by the orchestrator;
// the kind only feeds observability and risk factors.
type ErrorKind string

const (
	// ErrorKindTimeout means the collector did not finish within its
	// time budget and its partial work was discarded.
	ErrorKindTimeout ErrorKind = "timeout"

	// ErrorKindFault means the collector's own logic failed: upstream
	// outage, parse error, bad response shape, or a recovered panic.
	ErrorKindFault ErrorKind = "fault"
)

// ResultEnvelope is the uniform wrapper every runner returns, regardless
// of how the wrapped collector fared. Exactly one of Payload and Error
// is set: Payload on success, Error otherwise.
type ResultEnvelope struct {
	// Collector identifies which collector produced this envelope.
	Collector CollectorID `json:"collector"`

	// Success reports whether the collector returned a payload before
	// its deadline.
	Success bool `json:"success"`

	// Payload is the category-specific evidence; nil on failure.
	Payload CategoryEvidence `json:"payload,omitempty"`

	// Error describes the failure; empty on success.
	Error string `json:"error,omitempty"`

	// ErrorKind classifies the failure; empty on success.
	ErrorKind ErrorKind `json:"error_kind,omitempty"`

	// Elapsed is the wall-clock time the collector ran.
	Elapsed time.Duration `json:"elapsed"`
}

// CollectorRun records one collector's outcome inside a RunSummary.
type CollectorRun struct {
	Collector CollectorID   `json:"collector"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	ErrorKind ErrorKind     `json:"error_kind,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
}

// RunSummary is the orchestrator's account of one analysis run: which
// case was detected, which collectors were required, and how each fared.
// It is the pipeline's observability contract; the core itself performs
// no logging.
type RunSummary struct {
	// RunID uniquely identifies this orchestration run.
	RunID string `json:"run_id"`

	// Case is the classification chosen by the case router.
	Case Case `json:"case"`

	// Required lists the collectors the case demanded, in launch order.
	Required []CollectorID `json:"required"`

	// Runs holds one entry per required collector, in launch order.
	Runs []CollectorRun `json:"runs"`

	// Succeeded and Failed are convenience counts over Runs.
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	// StartedAt is when the fan-out began; Elapsed is total wall time
	// until the last runner settled.
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

// FailedCollectors returns the IDs of collectors that did not succeed,
// in launch order.
func (s RunSummary) FailedCollectors() []CollectorID {
	var failed []CollectorID
	for _, run := range s.Runs {
		if !run.Success {
			failed = append(failed, run.Collector)
		}
	}
	return failed
}

// SucceededFor reports whether the named collector ran and succeeded.
func (s RunSummary) SucceededFor(id CollectorID) bool {
	for _, run := range s.Runs {
		if run.Collector == id {
			return run.Success
		}
	}
	return false
}
