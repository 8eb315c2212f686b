package collectors

import (
	"context"
	"strings"
	"time"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

var _ ports.Collector = (*RegulatoryCollector)(nil)

type approval struct {
	indication   string
	approvalDate string
	application  string
}

// Known FDA approvals for drugs with well-documented regulatory
// histories.
var approvalTable = map[string]approval{
	"metformin":  {indication: "Type 2 Diabetes Mellitus", approvalDate: "1994-12-29", application: "NDA 020357"},
	"aspirin":    {indication: "Pain, fever, inflammation; cardiovascular prophylaxis", approvalDate: "1939-08-01", application: "Pre-1938 grandfathered"},
	"sildenafil": {indication: "Erectile Dysfunction", approvalDate: "1998-03-27", application: "NDA 020895"},
	"ibuprofen":  {indication: "Pain and inflammation", approvalDate: "1974-09-19", application: "NDA 017463"},
}

var pathway505b2 = domain.RegulatoryPathway{
	Name:          "505(b)(2) New Drug Application",
	Description:   "Abbreviated pathway relying on existing safety data for an approved active ingredient",
	Timeline:      "3-5 years",
	RequiresIND:   true,
	EstimatedCost: "$5-20M",
}

var pathwayIND = domain.RegulatoryPathway{
	Name:          "Investigational New Drug (IND)",
	Description:   "Full development program with de novo safety and efficacy evidence",
	Timeline:      "7-10 years",
	RequiresIND:   true,
	EstimatedCost: "$50M+",
}

// RegulatoryCollector derives the approval status and available pathway
// for the subject from the known-approval table, enriched with
// classification and manufacturer data from the reference dataset.
type RegulatoryCollector struct {
	store   ports.ReferenceStore
	timeout time.Duration
}

// NewRegulatoryCollector builds the collector.
func NewRegulatoryCollector(store ports.ReferenceStore, timeout time.Duration) *RegulatoryCollector {
	return &RegulatoryCollector{store: store, timeout: timeout}
}

// ID implements ports.Collector.
func (c *RegulatoryCollector) ID() domain.CollectorID { return domain.CollectorRegulatory }

// Timeout implements ports.Collector.
func (c *RegulatoryCollector) Timeout() time.Duration { return c.timeout }

// Execute resolves the subject's regulatory position. An approved active
// ingredient opens the abbreviated 505(b)(2) route for a new indication;
// everything else takes the full IND route.
func (c *RegulatoryCollector) Execute(ctx context.Context, subject, condition string) (domain.CategoryEvidence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	evidence := domain.RegulatoryEvidence{Pathway: pathwayIND}

	key := strings.ToLower(strings.TrimSpace(subject))
	if known, ok := approvalTable[key]; ok {
		evidence.Approved = true
		evidence.Indication = known.indication
		evidence.ApprovalDate = known.approvalDate
		evidence.Application = known.application
		evidence.Pathway = pathway505b2
	}

	if c.store != nil && subject != "" {
		record, found, err := c.store.Lookup(ctx, subject)
		if err == nil && found {
			evidence.Classification = record.Classification
			evidence.Manufacturers = append([]string(nil), record.Manufacturers...)
			// The dataset documents marketed medicines; a hit implies an
			// approval even when the curated table lacks the details.
			if !evidence.Approved && len(record.Indications) > 0 {
				evidence.Approved = true
				evidence.Indication = record.Indications[0]
				evidence.Pathway = pathway505b2
			}
		}
	}

	return evidence, nil
}
