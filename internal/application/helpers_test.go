package application

import (
	"context"
	"sync"
	"time"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

// fakeCollector is a configurable in-memory collector for pipeline
// tests. It can delay, fail, or panic on demand and records how often it
// was executed.
type fakeCollector struct {
	id       domain.CollectorID
	timeout  time.Duration
	delay    time.Duration
	payload  domain.CategoryEvidence
	err      error
	panicMsg string

	mu    sync.Mutex
	calls int
}

var _ ports.Collector = (*fakeCollector)(nil)

func (f *fakeCollector) ID() domain.CollectorID { return f.id }

func (f *fakeCollector) Timeout() time.Duration {
	if f.timeout == 0 {
		return time.Second
	}
	return f.timeout
}

func (f *fakeCollector) Execute(ctx context.Context, subject, condition string) (domain.CategoryEvidence, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func (f *fakeCollector) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// goldenEvidence returns the payload for one category of a strong
// repurposing candidate: an approved drug with rich literature, existing
// approval for the target condition, and a favorable market.
func goldenEvidence(id domain.CollectorID) domain.CategoryEvidence {
	switch id {
	case domain.CollectorLiterature:
		papers := make([]domain.ResearchPaper, 8)
		for i := range papers {
			papers[i] = domain.ResearchPaper{
				Title:     "Repurposing study",
				Relevance: 90,
			}
		}
		return domain.LiteratureEvidence{Papers: papers, Query: "metformin AND pcos"}
	case domain.CollectorTrials:
		return domain.TrialsEvidence{
			Trials: []domain.ClinicalTrial{
				{ID: "NCT00000001", Phase: "Phase 3", Status: "Recruiting"},
				{ID: "NCT00000002", Phase: "Phase 2", Status: "Active, not recruiting"},
			},
			AlreadyApproved: true,
		}
	case domain.CollectorPatents:
		return domain.PatentEvidence{
			Patents: []domain.Patent{
				{Number: "US1", Status: "Granted"},
				{Number: "US2", Status: "Pending"},
			},
		}
	case domain.CollectorRegulatory:
		return domain.RegulatoryEvidence{
			Approved:   true,
			Indication: "Type 2 Diabetes Mellitus",
			Pathway:    domain.RegulatoryPathway{Name: "505(b)(2) New Drug Application"},
		}
	case domain.CollectorMarket:
		return domain.MarketEvidence{
			MarketSize:  "$4.2B",
			Competition: "Low",
			UnmetNeed:   "High",
		}
	default:
		return nil
	}
}

// goldenCollectors returns a full collector set serving goldenEvidence.
func goldenCollectors() []ports.Collector {
	set := make([]ports.Collector, 0, len(domain.AllCollectors))
	for _, id := range domain.AllCollectors {
		set = append(set, &fakeCollector{id: id, payload: goldenEvidence(id)})
	}
	return set
}
