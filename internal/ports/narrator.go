package ports

import (
	"context"

	"github.com/chiku1101/druggs/internal/domain"
)

// Narrator writes a prose executive summary for a finished analysis.
// Implementations are optional; the analyzer treats a narrator failure
// as a degraded run, keeping the deterministic recommendation text.
type Narrator interface {
	Summarize(ctx context.Context, subject, condition string, breakdown domain.ScoreBreakdown, decision domain.Decision) (string, error)
}
