package collectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chiku1101/druggs/infrastructure/httpclient"
	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

var _ ports.Collector = (*TrialsCollector)(nil)

const trialsMaxResults = 8

// TrialsCollector queries the ClinicalTrials.gov v2 API for registered
// trials of the subject against the condition, and consults the
// reference dataset for an existing approval of that pairing.
type TrialsCollector struct {
	client  *httpclient.Client
	baseURL string
	store   ports.ReferenceStore
	timeout time.Duration
}

// NewTrialsCollector builds the collector against the given API base URL.
func NewTrialsCollector(client *httpclient.Client, baseURL string, store ports.ReferenceStore, timeout time.Duration) *TrialsCollector {
	return &TrialsCollector{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		timeout: timeout,
	}
}

// ID implements ports.Collector.
func (c *TrialsCollector) ID() domain.CollectorID { return domain.CollectorTrials }

// Timeout implements ports.Collector.
func (c *TrialsCollector) Timeout() time.Duration { return c.timeout }

// v2 /studies JSON shape, reduced to the fields the evidence needs.
type ctgovResponse struct {
	Studies []struct {
		ProtocolSection struct {
			Identification struct {
				NCTID      string `json:"nctId"`
				BriefTitle string `json:"briefTitle"`
			} `json:"identificationModule"`
			Status struct {
				OverallStatus  string `json:"overallStatus"`
				CompletionDate struct {
					Date string `json:"date"`
				} `json:"completionDateStruct"`
			} `json:"statusModule"`
			Design struct {
				Phases     []string `json:"phases"`
				Enrollment struct {
					Count int `json:"count"`
				} `json:"enrollmentInfo"`
			} `json:"designModule"`
		} `json:"protocolSection"`
	} `json:"studies"`
}

// Execute fetches up to eight trials for the pair. The already-approved
// flag is derived from the reference dataset, not from the registry; a
// reference miss simply leaves it false.
func (c *TrialsCollector) Execute(ctx context.Context, subject, condition string) (domain.CategoryEvidence, error) {
	params := url.Values{}
	params.Set("pageSize", fmt.Sprint(trialsMaxResults))
	params.Set("format", "json")
	if subject != "" {
		params.Set("query.intr", subject)
	}
	if condition != "" {
		params.Set("query.cond", condition)
	}

	body, err := c.client.Get(ctx, c.baseURL+"/studies?"+params.Encode())
	if err != nil {
		return nil, ports.NewCollectorError(c.ID(), "query", err)
	}

	var parsed ctgovResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, ports.NewCollectorError(c.ID(), "query",
			fmt.Errorf("%w: studies: %v", ports.ErrInvalidResponse, err))
	}

	trials := make([]domain.ClinicalTrial, 0, len(parsed.Studies))
	for _, study := range parsed.Studies {
		section := study.ProtocolSection
		trials = append(trials, domain.ClinicalTrial{
			ID:             section.Identification.NCTID,
			Title:          section.Identification.BriefTitle,
			Status:         formatStatus(section.Status.OverallStatus),
			Phase:          formatPhases(section.Design.Phases),
			Participants:   section.Design.Enrollment.Count,
			CompletionDate: section.Status.CompletionDate.Date,
			URL:            "https://clinicaltrials.gov/study/" + section.Identification.NCTID,
		})
	}

	return domain.TrialsEvidence{
		Trials:          trials,
		AlreadyApproved: c.alreadyApproved(ctx, subject, condition),
	}, nil
}

func (c *TrialsCollector) alreadyApproved(ctx context.Context, subject, condition string) bool {
	if c.store == nil || subject == "" || condition == "" {
		return false
	}
	record, found, err := c.store.Lookup(ctx, subject)
	if err != nil || !found {
		return false
	}
	return record.ApprovedFor(condition)
}

// formatPhases renders the registry's enum values ("PHASE2", "PHASE3")
// as the human labels the scoring heuristics match against.
func formatPhases(phases []string) string {
	if len(phases) == 0 {
		return "Not specified"
	}
	labels := make([]string, 0, len(phases))
	for _, phase := range phases {
		label := strings.ToLower(strings.TrimSpace(phase))
		label = strings.ReplaceAll(label, "_", " ")
		if strings.HasPrefix(label, "phase") && !strings.Contains(label, " ") {
			label = "phase " + strings.TrimPrefix(label, "phase")
		}
		if label == "na" {
			label = "not applicable"
		}
		labels = append(labels, capitalize(label))
	}
	return strings.Join(labels, "/")
}

func formatStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	status = strings.ReplaceAll(status, "_", " ")
	if status == "" {
		return "Unknown"
	}
	return capitalize(status)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
