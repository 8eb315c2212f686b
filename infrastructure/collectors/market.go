package collectors

import (
	"context"
	"strings"
	"time"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

var _ ports.Collector = (*MarketCollector)(nil)

// Market bands per condition family. Keys are matched as substrings of
// the normalized condition, so "ovarian cancer" hits the cancer band.
var marketTable = []struct {
	keyword  string
	evidence domain.MarketEvidence
}{
	{"cancer", domain.MarketEvidence{
		MarketSize:        "$230B",
		GrowthRate:        "11% CAGR",
		Competition:       "High",
		UnmetNeed:         "High",
		PatientPopulation: "19M new cases annually worldwide",
		Timeline:          "5-8 years to market",
		Exclusivity:       "Orphan designation possible for rare subtypes",
	}},
	{"pcos", domain.MarketEvidence{
		MarketSize:        "$4.2B",
		GrowthRate:        "12% CAGR",
		Competition:       "Low",
		UnmetNeed:         "High - no approved first-line therapy",
		PatientPopulation: "8-13% of women of reproductive age",
		Timeline:          "3-5 years to market",
		Exclusivity:       "3-year Hatch-Waxman for new indication",
	}},
	{"polycystic", domain.MarketEvidence{
		MarketSize:        "$4.2B",
		GrowthRate:        "12% CAGR",
		Competition:       "Low",
		UnmetNeed:         "High - no approved first-line therapy",
		PatientPopulation: "8-13% of women of reproductive age",
		Timeline:          "3-5 years to market",
		Exclusivity:       "3-year Hatch-Waxman for new indication",
	}},
	{"cardiovascular", domain.MarketEvidence{
		MarketSize:        "$60B",
		GrowthRate:        "7% CAGR",
		Competition:       "High",
		UnmetNeed:         "Moderate",
		PatientPopulation: "500M affected worldwide",
		Timeline:          "5-7 years to market",
	}},
	{"hypertension", domain.MarketEvidence{
		MarketSize:        "$28B",
		GrowthRate:        "5% CAGR",
		Competition:       "High",
		UnmetNeed:         "Moderate - resistant hypertension underserved",
		PatientPopulation: "1.3B affected worldwide",
		Timeline:          "4-6 years to market",
	}},
	{"diabetes", domain.MarketEvidence{
		MarketSize:        "$80B",
		GrowthRate:        "9% CAGR",
		Competition:       "High",
		UnmetNeed:         "Moderate",
		PatientPopulation: "540M affected worldwide",
		Timeline:          "4-6 years to market",
	}},
	{"alzheimer", domain.MarketEvidence{
		MarketSize:        "$12B",
		GrowthRate:        "16% CAGR",
		Competition:       "Moderate",
		UnmetNeed:         "High - few disease-modifying options",
		PatientPopulation: "55M with dementia worldwide",
		Timeline:          "7-10 years to market",
	}},
}

// defaultMarketBand covers conditions outside the table.
var defaultMarketBand = domain.MarketEvidence{
	MarketSize:  "$2-10B",
	GrowthRate:  "6-8% CAGR",
	Competition: "Moderate",
	UnmetNeed:   "Moderate",
	Timeline:    "5-7 years to market",
}

// MarketCollector serves the condition-keyed market band table.
type MarketCollector struct {
	timeout time.Duration
}

// NewMarketCollector builds the collector.
func NewMarketCollector(timeout time.Duration) *MarketCollector {
	return &MarketCollector{timeout: timeout}
}

// ID implements ports.Collector.
func (c *MarketCollector) ID() domain.CollectorID { return domain.CollectorMarket }

// Timeout implements ports.Collector.
func (c *MarketCollector) Timeout() time.Duration { return c.timeout }

// Execute returns the market band for the condition. The first matching
// keyword wins; unmatched conditions fall to the default band.
func (c *MarketCollector) Execute(ctx context.Context, subject, condition string) (domain.CategoryEvidence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := strings.ToLower(strings.TrimSpace(condition))
	for _, entry := range marketTable {
		if strings.Contains(normalized, entry.keyword) {
			return entry.evidence, nil
		}
	}
	return defaultMarketBand, nil
}
