// Package domain contains pure, dependency-free domain models and types
// for the repurposing analysis pipeline.
package domain

// CollectorID identifies one evidence category and the collector that
// produces it. IDs double as keys in pools, summaries, and score
// breakdowns, so they must stay stable across releases.
type CollectorID string

// The five evidence categories recognized by the pipeline.
const (
	// CollectorLiterature gathers scientific literature evidence.
	CollectorLiterature CollectorID = "literature"

	// CollectorTrials gathers clinical trial evidence.
	CollectorTrials CollectorID = "trials"

	// CollectorPatents gathers patent landscape evidence.
	CollectorPatents CollectorID = "patents"

	// CollectorRegulatory gathers regulatory status evidence.
	CollectorRegulatory CollectorID = "regulatory"

	// CollectorMarket gathers market opportunity evidence.
	CollectorMarket CollectorID = "market"
)

// AllCollectors lists every category in canonical order. The order is
// used for deterministic iteration when building reasoning and reports.
var AllCollectors = []CollectorID{
	CollectorLiterature,
	CollectorTrials,
	CollectorPatents,
	CollectorRegulatory,
	CollectorMarket,
}

// DisplayName returns the human-readable collector name used in risk
// factors and run summaries (e.g. "TrialsCollector").
func (id CollectorID) DisplayName() string {
	switch id {
	case CollectorLiterature:
		return "LiteratureCollector"
	case CollectorTrials:
		return "TrialsCollector"
	case CollectorPatents:
		return "PatentCollector"
	case CollectorRegulatory:
		return "RegulatoryCollector"
	case CollectorMarket:
		return "MarketCollector"
	default:
		return string(id)
	}
}
