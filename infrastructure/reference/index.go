// Package reference serves the canonical medicine dataset from an
// in-memory index built off a CSV file. Lookups tolerate minor spelling
// differences and are cached; a miss is a normal empty result, never an
// error.
package reference

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

var _ ports.ReferenceStore = (*Index)(nil)

// Names within this edit distance of a query still match. Two covers
// the common transposition and trailing-letter typos without letting
// "aspirin" resolve to "astepin".
const maxEditDistance = 2

// foldString case-folds for matching. A fresh Caser per call keeps the
// index safe for concurrent readers; Casers are not goroutine safe.
func foldString(s string) string { return cases.Fold().String(s) }

// Expected CSV header columns. Multi-valued columns are semicolon
// separated within a cell.
var expectedHeader = []string{
	"name", "category", "indications", "dosage_forms",
	"strengths", "manufacturers", "classification",
}

// Index is the in-memory reference store. Immutable after construction
// and safe for concurrent use; the lookup cache is internally
// synchronized.
type Index struct {
	records []domain.ReferenceRecord
	byName  map[string]int

	// foldedNames is sorted and parallel-free: each entry pairs a folded
	// name with its record position for prefix scans and fuzzy matching.
	foldedNames []nameEntry
	indications []string

	cache *lru.Cache[string, lookupHit]
}

type nameEntry struct {
	folded string
	pos    int
}

type lookupHit struct {
	record domain.ReferenceRecord
	found  bool
}

// Load builds an index from a CSV dataset file.
func Load(path string, cacheSize int) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open dataset: %v", ports.ErrReferenceData, err)
	}
	defer file.Close()

	index, err := parse(file, cacheSize)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return index, nil
}

func parse(r io.Reader, cacheSize int) (*Index, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ports.ErrReferenceData, err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	cache, err := lru.New[string, lookupHit](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("build lookup cache: %w", err)
	}

	index := &Index{byName: make(map[string]int), cache: cache}
	indicationSet := make(map[string]string)

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ports.ErrReferenceData, line, err)
		}

		record := recordFromRow(row, columns)
		if record.Name == "" {
			continue
		}

		folded := foldString(record.Name)
		if _, exists := index.byName[folded]; exists {
			continue
		}
		index.byName[folded] = len(index.records)
		index.foldedNames = append(index.foldedNames, nameEntry{folded: folded, pos: len(index.records)})
		index.records = append(index.records, record)

		for _, indication := range record.Indications {
			indicationSet[foldString(indication)] = indication
		}
	}

	sort.Slice(index.foldedNames, func(i, j int) bool {
		return index.foldedNames[i].folded < index.foldedNames[j].folded
	})
	for _, indication := range indicationSet {
		index.indications = append(index.indications, indication)
	}
	sort.Strings(index.indications)

	return index, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[foldString(strings.TrimSpace(name))] = i
	}
	for _, required := range expectedHeader {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ports.ErrReferenceData, required)
		}
	}
	return columns, nil
}

func recordFromRow(row []string, columns map[string]int) domain.ReferenceRecord {
	cell := func(name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return domain.ReferenceRecord{
		Name:           cell("name"),
		Category:       cell("category"),
		Indications:    splitList(cell("indications")),
		DosageForms:    splitList(cell("dosage_forms")),
		Strengths:      splitList(cell("strengths")),
		Manufacturers:  splitList(cell("manufacturers")),
		Classification: cell("classification"),
	}
}

func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, ";")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// Len returns the number of indexed records.
func (x *Index) Len() int { return len(x.records) }

// Lookup resolves a subject name to its canonical record. Resolution
// order: exact folded match, then closest name within the edit distance
// bound. Results, including misses, are cached.
func (x *Index) Lookup(ctx context.Context, name string) (domain.ReferenceRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.ReferenceRecord{}, false, err
	}

	folded := foldString(strings.TrimSpace(name))
	if folded == "" {
		return domain.ReferenceRecord{}, false, nil
	}

	if hit, ok := x.cache.Get(folded); ok {
		return hit.record, hit.found, nil
	}

	record, found := x.resolve(folded)
	x.cache.Add(folded, lookupHit{record: record, found: found})
	return record, found, nil
}

func (x *Index) resolve(folded string) (domain.ReferenceRecord, bool) {
	if pos, ok := x.byName[folded]; ok {
		return x.records[pos], true
	}

	bestPos := -1
	bestDistance := maxEditDistance + 1
	for _, entry := range x.foldedNames {
		// Cheap length gate before the distance computation.
		if lengthGap(entry.folded, folded) > maxEditDistance {
			continue
		}
		if d := levenshtein.ComputeDistance(entry.folded, folded); d < bestDistance {
			bestDistance = d
			bestPos = entry.pos
		}
	}
	if bestPos < 0 {
		return domain.ReferenceRecord{}, false
	}
	return x.records[bestPos], true
}

func lengthGap(a, b string) int {
	if len(a) > len(b) {
		return len(a) - len(b)
	}
	return len(b) - len(a)
}

// SearchByIndication returns records whose documented indications
// mention the condition, up to limit.
func (x *Index) SearchByIndication(ctx context.Context, condition string, limit int) ([]domain.ReferenceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	folded := foldString(strings.TrimSpace(condition))
	if folded == "" || limit <= 0 {
		return nil, nil
	}

	var matches []domain.ReferenceRecord
	for _, record := range x.records {
		for _, indication := range record.Indications {
			foldedIndication := foldString(indication)
			if strings.Contains(foldedIndication, folded) || strings.Contains(folded, foldedIndication) {
				matches = append(matches, record)
				break
			}
		}
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

// SuggestNames returns canonical names starting with the prefix, in
// lexicographic order, up to limit.
func (x *Index) SuggestNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	folded := foldString(strings.TrimSpace(prefix))
	if folded == "" || limit <= 0 {
		return nil, nil
	}

	start := sort.Search(len(x.foldedNames), func(i int) bool {
		return x.foldedNames[i].folded >= folded
	})
	var names []string
	for i := start; i < len(x.foldedNames) && len(names) < limit; i++ {
		if !strings.HasPrefix(x.foldedNames[i].folded, folded) {
			break
		}
		names = append(names, x.records[x.foldedNames[i].pos].Name)
	}
	return names, nil
}

// SuggestIndications returns known indications starting with the prefix,
// in lexicographic order, up to limit.
func (x *Index) SuggestIndications(ctx context.Context, prefix string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	folded := foldString(strings.TrimSpace(prefix))
	if folded == "" || limit <= 0 {
		return nil, nil
	}

	var suggestions []string
	for _, indication := range x.indications {
		if strings.HasPrefix(foldString(indication), folded) {
			suggestions = append(suggestions, indication)
			if len(suggestions) == limit {
				break
			}
		}
	}
	return suggestions, nil
}
