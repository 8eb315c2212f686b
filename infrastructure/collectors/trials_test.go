package collectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiku1101/druggs/infrastructure/httpclient"
	"github.com/chiku1101/druggs/internal/domain"
)

const ctgovBody = `{
  "studies": [
    {
      "protocolSection": {
        "identificationModule": {"nctId": "NCT01234567", "briefTitle": "Metformin in PCOS"},
        "statusModule": {"overallStatus": "RECRUITING", "completionDateStruct": {"date": "2026-06"}},
        "designModule": {"phases": ["PHASE3"], "enrollmentInfo": {"count": 240}}
      }
    },
    {
      "protocolSection": {
        "identificationModule": {"nctId": "NCT07654321", "briefTitle": "Metformin monotherapy"},
        "statusModule": {"overallStatus": "ACTIVE_NOT_RECRUITING"},
        "designModule": {"phases": ["PHASE1", "PHASE2"], "enrollmentInfo": {"count": 60}}
      }
    }
  ]
}`

func ctgovTestServer(t *testing.T, body string, capture *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = r.URL.RawQuery
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestTrialsCollector_Execute(t *testing.T) {
	var query string
	server := ctgovTestServer(t, ctgovBody, &query)
	collector := NewTrialsCollector(
		httpclient.New("ctgov-test", 100, 10), server.URL, metforminStore(), 5*time.Second)

	assert.Equal(t, domain.CollectorTrials, collector.ID())

	evidence, err := collector.Execute(context.Background(), "metformin", "polycystic ovary syndrome")
	require.NoError(t, err)

	trials, ok := evidence.(domain.TrialsEvidence)
	require.True(t, ok)
	require.Len(t, trials.Trials, 2)

	first := trials.Trials[0]
	assert.Equal(t, "NCT01234567", first.ID)
	assert.Equal(t, "Phase 3", first.Phase)
	assert.Equal(t, "Recruiting", first.Status)
	assert.Equal(t, 240, first.Participants)
	assert.Equal(t, "2026-06", first.CompletionDate)
	assert.Contains(t, first.URL, "NCT01234567")

	assert.Equal(t, "Phase 1/Phase 2", trials.Trials[1].Phase)
	assert.Equal(t, "Active not recruiting", trials.Trials[1].Status)

	assert.Contains(t, query, "query.intr=metformin")
	assert.Contains(t, query, "query.cond=polycystic+ovary+syndrome")
}

func TestTrialsCollector_AlreadyApprovedFromReference(t *testing.T) {
	server := ctgovTestServer(t, `{"studies":[]}`, nil)
	collector := NewTrialsCollector(
		httpclient.New("ctgov-test", 100, 10), server.URL, metforminStore(), 5*time.Second)

	evidence, err := collector.Execute(context.Background(), "metformin", "polycystic ovary syndrome")
	require.NoError(t, err)
	assert.True(t, evidence.(domain.TrialsEvidence).AlreadyApproved)

	evidence, err = collector.Execute(context.Background(), "metformin", "hypertension")
	require.NoError(t, err)
	assert.False(t, evidence.(domain.TrialsEvidence).AlreadyApproved)
}

func TestTrialsCollector_InvalidJSON(t *testing.T) {
	server := ctgovTestServer(t, `{"studies": [`, nil)
	collector := NewTrialsCollector(
		httpclient.New("ctgov-test", 100, 10), server.URL, nil, 5*time.Second)

	_, err := collector.Execute(context.Background(), "metformin", "pcos")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TrialsCollector")
}

func TestFormatPhases(t *testing.T) {
	assert.Equal(t, "Not specified", formatPhases(nil))
	assert.Equal(t, "Phase 2", formatPhases([]string{"PHASE2"}))
	assert.Equal(t, "Not applicable", formatPhases([]string{"NA"}))
}
