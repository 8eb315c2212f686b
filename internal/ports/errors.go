package ports

import (
	"errors"
	"fmt"

	"github.com/chiku1101/druggs/internal/domain"
)

// Common errors that can occur while gathering evidence from external
// sources. All of them are recovered locally by the runner; nothing in
// the core treats them as fatal.
var (
	// ErrUpstreamStatus indicates an evidence source answered with a
	// non-success HTTP status.
	ErrUpstreamStatus = errors.New("upstream returned non-success status")

	// ErrUpstreamUnavailable indicates an evidence source could not be
	// reached, including a tripped circuit breaker.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrInvalidResponse indicates an evidence source returned a payload
	// that could not be parsed.
	ErrInvalidResponse = errors.New("invalid upstream response")

	// ErrReferenceData indicates the reference dataset could not be
	// loaded or queried. A lookup miss is NOT an error.
	ErrReferenceData = errors.New("reference data error")
)

// CollectorError wraps a fault from a specific collector with enough
// context to attribute it in run summaries and risk factors.
type CollectorError struct {
	// Collector identifies the failing collector.
	Collector domain.CollectorID

	// Operation names the step that failed, e.g. "esearch" or "decode".
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *CollectorError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Collector.DisplayName(), e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *CollectorError) Unwrap() error { return e.Err }

// NewCollectorError creates a CollectorError with the given details.
func NewCollectorError(collector domain.CollectorID, operation string, err error) *CollectorError {
	return &CollectorError{Collector: collector, Operation: operation, Err: err}
}
