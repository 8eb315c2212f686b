package collectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiku1101/druggs/infrastructure/httpclient"
	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

const esearchBody = `{"esearchresult":{"idlist":["11111","22222"]}}`

const efetchBody = `<?xml version="1.0"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>11111</PMID>
      <Article>
        <ArticleTitle>Metformin repurposing for PCOS: a clinical trial</ArticleTitle>
        <Abstract><AbstractText>Efficacy of metformin in polycystic ovary syndrome.</AbstractText></Abstract>
        <Journal>
          <Title>Journal of Endocrinology</Title>
          <JournalIssue><PubDate><Year>2021</Year></PubDate></JournalIssue>
        </Journal>
        <AuthorList>
          <Author><LastName>Smith</LastName><Initials>J</Initials></Author>
          <Author><LastName>Lee</LastName><Initials>K</Initials></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>22222</PMID>
      <Article>
        <ArticleTitle>Glycemic control in adolescents</ArticleTitle>
        <Abstract><AbstractText>Observational cohort.</AbstractText></Abstract>
        <Journal>
          <Title>Diabetes Care</Title>
          <JournalIssue><PubDate><Year>2019</Year></PubDate></JournalIssue>
        </Journal>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func pubmedTestServer(t *testing.T, esearch, efetch string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/esearch.fcgi":
			w.Write([]byte(esearch))
		case r.URL.Path == "/efetch.fcgi":
			w.Write([]byte(efetch))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLiteratureCollector_Execute(t *testing.T) {
	server := pubmedTestServer(t, esearchBody, efetchBody)
	collector := NewLiteratureCollector(
		httpclient.New("pubmed-test", 100, 10), server.URL, nil, 5*time.Second)

	assert.Equal(t, domain.CollectorLiterature, collector.ID())

	evidence, err := collector.Execute(context.Background(), "metformin", "pcos")
	require.NoError(t, err)

	literature, ok := evidence.(domain.LiteratureEvidence)
	require.True(t, ok)
	require.Len(t, literature.Papers, 2)
	assert.Equal(t, "metformin AND pcos", literature.Query)

	// The repurposing paper outranks the unrelated one.
	first := literature.Papers[0]
	assert.Equal(t, "11111", first.PMID)
	assert.Equal(t, "Metformin repurposing for PCOS: a clinical trial", first.Title)
	assert.Equal(t, "Smith J, Lee K", first.Authors)
	assert.Equal(t, "Journal of Endocrinology", first.Journal)
	assert.Equal(t, 2021, first.Year)
	assert.Greater(t, first.Relevance, literature.Papers[1].Relevance)
	assert.Contains(t, first.URL, "11111")
}

func TestLiteratureCollector_EmptyResultFallsBackToReference(t *testing.T) {
	server := pubmedTestServer(t, `{"esearchresult":{"idlist":[]}}`, efetchBody)
	collector := NewLiteratureCollector(
		httpclient.New("pubmed-test", 100, 10), server.URL, metforminStore(), 5*time.Second)

	evidence, err := collector.Execute(context.Background(), "metformin", "polycystic ovary syndrome")
	require.NoError(t, err)

	literature := evidence.(domain.LiteratureEvidence)
	require.Len(t, literature.Papers, 1)
	assert.Contains(t, literature.Papers[0].Title, "Documented clinical use of Metformin")
	assert.Equal(t, 60, literature.Papers[0].Relevance)
}

func TestLiteratureCollector_EmptyResultWithoutReferenceMatch(t *testing.T) {
	server := pubmedTestServer(t, `{"esearchresult":{"idlist":[]}}`, efetchBody)
	collector := NewLiteratureCollector(
		httpclient.New("pubmed-test", 100, 10), server.URL, metforminStore(), 5*time.Second)

	evidence, err := collector.Execute(context.Background(), "metformin", "hypertension")
	require.NoError(t, err)
	assert.Empty(t, evidence.(domain.LiteratureEvidence).Papers)
}

func TestLiteratureCollector_UpstreamErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	collector := NewLiteratureCollector(
		httpclient.New("pubmed-test", 100, 10), server.URL, nil, 5*time.Second)

	_, err := collector.Execute(context.Background(), "metformin", "pcos")
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrUpstreamStatus)
	assert.Contains(t, err.Error(), "LiteratureCollector")
}

func TestScoreRelevance(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  int
	}{
		{"plain title", "An observational cohort", 50},
		{"repurposing keyword", "Drug repurposing candidates", 65},
		{"stacked keywords clamp at one hundred", "Repurposing clinical trial: efficacy and mechanism of a new indication therapy", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreRelevance(tt.title, "", "", ""))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 500))

	// Cutting inside a multibyte rune must back up to the rune start so
	// the summary stays valid UTF-8.
	long := strings.Repeat("é", 300)
	got := truncate(long, 499)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 249)+"...", got)
}
