package collectors

import (
	"context"
	"strings"
	"time"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

var _ ports.Collector = (*PatentsCollector)(nil)

// Curated patent landscape for drugs with well-known repurposing
// histories. Subjects outside the table yield an empty landscape, which
// the scoring engine treats as open opportunity rather than failure.
var patentTable = map[string][]domain.Patent{
	"metformin": {
		{
			Number:     "US10201523B2",
			Title:      "Metformin formulations for extended release",
			Status:     "Granted",
			FilingDate: "2016-03-14",
			Assignee:   "Bristol-Myers Squibb",
			URL:        "https://patents.google.com/patent/US10201523B2",
		},
		{
			Number:     "US20190343784A1",
			Title:      "Methods of treating polycystic ovary syndrome with biguanides",
			Status:     "Pending",
			FilingDate: "2019-05-08",
			URL:        "https://patents.google.com/patent/US20190343784A1",
		},
	},
	"aspirin": {
		{
			Number:     "US9452175B2",
			Title:      "Low-dose acetylsalicylic acid for cancer chemoprevention",
			Status:     "Granted",
			FilingDate: "2013-06-20",
			Assignee:   "Bayer AG",
			URL:        "https://patents.google.com/patent/US9452175B2",
		},
	},
	"sildenafil": {
		{
			Number:     "US6469012B1",
			Title:      "Pyrazolopyrimidinones for the treatment of impotence",
			Status:     "Granted",
			FilingDate: "1994-05-13",
			Assignee:   "Pfizer Inc",
			URL:        "https://patents.google.com/patent/US6469012B1",
		},
		{
			Number:     "US7812184B2",
			Title:      "Sildenafil citrate for pulmonary arterial hypertension",
			Status:     "Granted",
			FilingDate: "2006-02-27",
			Assignee:   "Pfizer Inc",
			URL:        "https://patents.google.com/patent/US7812184B2",
		},
	},
}

// PatentsCollector serves the curated patent landscape table.
type PatentsCollector struct {
	timeout time.Duration
}

// NewPatentsCollector builds the collector.
func NewPatentsCollector(timeout time.Duration) *PatentsCollector {
	return &PatentsCollector{timeout: timeout}
}

// ID implements ports.Collector.
func (c *PatentsCollector) ID() domain.CollectorID { return domain.CollectorPatents }

// Timeout implements ports.Collector.
func (c *PatentsCollector) Timeout() time.Duration { return c.timeout }

// Execute returns the curated patents for the subject. Unknown subjects
// get an empty landscape, never an error.
func (c *PatentsCollector) Execute(ctx context.Context, subject, condition string) (domain.CategoryEvidence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	patents := patentTable[strings.ToLower(strings.TrimSpace(subject))]
	evidence := domain.PatentEvidence{Patents: make([]domain.Patent, len(patents))}
	copy(evidence.Patents, patents)
	return evidence, nil
}
