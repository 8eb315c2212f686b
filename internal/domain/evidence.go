package domain

import "strings"

// CategoryEvidence is the marker interface implemented by the five
// category-specific evidence records. A collector produces exactly one
// variant; the pool stores one record per required category.
type CategoryEvidence interface {
	// Category returns the evidence category this record belongs to.
	Category() CollectorID
}

// ResearchPaper is a single literature item found for a subject/condition
// pair. Relevance is a 0-100 heuristic computed by the collector.
type ResearchPaper struct {
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Journal   string `json:"journal"`
	Year      int    `json:"year"`
	Relevance int    `json:"relevance"`
	Summary   string `json:"summary"`
	PMID      string `json:"pmid,omitempty"`
	URL       string `json:"url,omitempty"`
}

// LiteratureEvidence is the normalized output of the literature collector.
type LiteratureEvidence struct {
	// Papers is ordered by source ranking, most relevant first.
	Papers []ResearchPaper `json:"papers"`

	// Query records the search expression that produced the papers.
	Query string `json:"query,omitempty"`
}

// Category implements CategoryEvidence.
func (LiteratureEvidence) Category() CollectorID { return CollectorLiterature }

// ClinicalTrial is a single registered trial for the subject/condition pair.
type ClinicalTrial struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Status         string `json:"status"`
	Phase          string `json:"phase"`
	Participants   int    `json:"participants"`
	CompletionDate string `json:"completion_date,omitempty"`
	URL            string `json:"url,omitempty"`
}

// TrialsEvidence is the normalized output of the trials collector.
type TrialsEvidence struct {
	Trials []ClinicalTrial `json:"trials"`

	// AlreadyApproved is set when the reference dataset documents the
	// subject as approved for the target condition. Scoring treats it as
	// a floor on the trial-category score, never a cap.
	AlreadyApproved bool `json:"already_approved"`
}

// Category implements CategoryEvidence.
func (TrialsEvidence) Category() CollectorID { return CollectorTrials }

// Patent is a single patent or application covering the subject/condition
// combination.
type Patent struct {
	Number     string `json:"number"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	FilingDate string `json:"filing_date,omitempty"`
	Assignee   string `json:"assignee,omitempty"`
	URL        string `json:"url,omitempty"`
}

// PatentEvidence is the normalized output of the patent collector.
type PatentEvidence struct {
	Patents []Patent `json:"patents"`
}

// Category implements CategoryEvidence.
func (PatentEvidence) Category() CollectorID { return CollectorPatents }

// RegulatoryPathway describes the approval route available for the
// subject/condition combination.
type RegulatoryPathway struct {
	// Name is the pathway label, e.g. "505(b)(2) Abbreviated New Drug
	// Application" or "Investigational New Drug (IND)".
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Timeline      string `json:"timeline,omitempty"`
	RequiresIND   bool   `json:"requires_ind"`
	EstimatedCost string `json:"estimated_cost,omitempty"`
}

// RegulatoryEvidence is the normalized output of the regulatory collector.
type RegulatoryEvidence struct {
	// Approved reports whether the subject holds approval for any
	// indication, not necessarily the target condition.
	Approved bool `json:"approved"`

	// Indication is the currently approved indication, when known.
	Indication string `json:"indication,omitempty"`

	ApprovalDate string            `json:"approval_date,omitempty"`
	Application  string            `json:"application,omitempty"`
	Pathway      RegulatoryPathway `json:"pathway"`

	// Classification and Manufacturers come from the reference dataset
	// when a canonical record for the subject exists.
	Classification string   `json:"classification,omitempty"`
	Manufacturers  []string `json:"manufacturers,omitempty"`
}

// Category implements CategoryEvidence.
func (RegulatoryEvidence) Category() CollectorID { return CollectorRegulatory }

// MarketEvidence is the normalized output of the market collector.
// Values are free-text bands (e.g. "$4.2B", "Low-Moderate") because the
// upstream sources report them that way; the scoring engine parses what
// it can and treats the rest as neutral.
type MarketEvidence struct {
	MarketSize        string `json:"market_size"`
	GrowthRate        string `json:"growth_rate,omitempty"`
	Competition       string `json:"competition,omitempty"`
	UnmetNeed         string `json:"unmet_need,omitempty"`
	PatientPopulation string `json:"patient_population,omitempty"`
	Timeline          string `json:"timeline,omitempty"`
	Exclusivity       string `json:"exclusivity,omitempty"`
}

// Category implements CategoryEvidence.
func (MarketEvidence) Category() CollectorID { return CollectorMarket }

// ReferenceRecord is the canonical dataset entry for a subject, served by
// the injected read-only reference store. A zero record is a normal
// "no match" outcome, never an error.
type ReferenceRecord struct {
	Name           string   `json:"name"`
	Category       string   `json:"category,omitempty"`
	Indications    []string `json:"indications,omitempty"`
	DosageForms    []string `json:"dosage_forms,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	Manufacturers  []string `json:"manufacturers,omitempty"`
	Classification string   `json:"classification,omitempty"`
}

// Empty reports whether the record carries no data, i.e. the lookup missed.
func (r ReferenceRecord) Empty() bool { return r.Name == "" }

// ApprovedFor reports whether the record documents the condition among
// its indications. Matching is case-insensitive and tolerates the
// condition naming a superset or subset of the documented phrase.
func (r ReferenceRecord) ApprovedFor(condition string) bool {
	condition = strings.ToLower(strings.TrimSpace(condition))
	if condition == "" || r.Empty() {
		return false
	}
	for _, indication := range r.Indications {
		indication = strings.ToLower(indication)
		if strings.Contains(indication, condition) || strings.Contains(condition, indication) {
			return true
		}
	}
	return false
}
