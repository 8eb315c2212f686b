package domain

// EvidencePool is the per-request aggregate of collected evidence, one
// record per required category. Categories that were not required, or
// whose collector failed, hold neutral defaults; the pool never has a
// missing entry for a required category.
type EvidencePool struct {
	// Required lists the categories this pool was built for, in the
	// case router's order. Scoring only considers these.
	Required []CollectorID `json:"required"`

	Literature LiteratureEvidence `json:"literature"`
	Trials     TrialsEvidence     `json:"trials"`
	Patents    PatentEvidence     `json:"patents"`
	Regulatory RegulatoryEvidence `json:"regulatory"`
	Market     MarketEvidence     `json:"market"`
}

// Neutral defaults substituted when a collector fails or is skipped.
// They carry explicit "nothing established" values rather than leaving
// the category absent, so downstream consumers never branch on presence.
func defaultLiterature() LiteratureEvidence { return LiteratureEvidence{Papers: []ResearchPaper{}} }

func defaultTrials() TrialsEvidence { return TrialsEvidence{Trials: []ClinicalTrial{}} }

func defaultPatents() PatentEvidence { return PatentEvidence{Patents: []Patent{}} }

func defaultRegulatory() RegulatoryEvidence {
	return RegulatoryEvidence{
		Pathway: RegulatoryPathway{Name: "Not established", RequiresIND: true},
	}
}

func defaultMarket() MarketEvidence {
	return MarketEvidence{
		MarketSize:  "To be determined",
		GrowthRate:  "Market analysis required",
		Competition: "Assessment needed",
	}
}

// NewEvidencePool returns a pool for the given required categories with
// every category at its neutral default.
func NewEvidencePool(required []CollectorID) EvidencePool {
	return EvidencePool{
		Required:   append([]CollectorID(nil), required...),
		Literature: defaultLiterature(),
		Trials:     defaultTrials(),
		Patents:    defaultPatents(),
		Regulatory: defaultRegulatory(),
		Market:     defaultMarket(),
	}
}

// Absorb folds a runner envelope into the pool. Failed envelopes leave
// the category at its neutral default. Each collector writes a distinct
// slot, so absorption order never changes the final pool.
func (p *EvidencePool) Absorb(env ResultEnvelope) {
	if !env.Success || env.Payload == nil {
		return
	}
	switch evidence := env.Payload.(type) {
	case LiteratureEvidence:
		if evidence.Papers == nil {
			evidence.Papers = []ResearchPaper{}
		}
		p.Literature = evidence
	case TrialsEvidence:
		if evidence.Trials == nil {
			evidence.Trials = []ClinicalTrial{}
		}
		p.Trials = evidence
	case PatentEvidence:
		if evidence.Patents == nil {
			evidence.Patents = []Patent{}
		}
		p.Patents = evidence
	case RegulatoryEvidence:
		p.Regulatory = evidence
	case MarketEvidence:
		p.Market = evidence
	}
}

// Requires reports whether the given category is part of this pool's
// required set.
func (p EvidencePool) Requires(id CollectorID) bool {
	for _, required := range p.Required {
		if required == id {
			return true
		}
	}
	return false
}
