package collectors

import (
	"context"
	"strings"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

// fakeStore is a map-backed ReferenceStore for collector tests.
type fakeStore struct {
	records map[string]domain.ReferenceRecord
}

var _ ports.ReferenceStore = (*fakeStore)(nil)

func (f *fakeStore) Lookup(ctx context.Context, name string) (domain.ReferenceRecord, bool, error) {
	record, found := f.records[strings.ToLower(strings.TrimSpace(name))]
	return record, found, nil
}

func (f *fakeStore) SearchByIndication(ctx context.Context, condition string, limit int) ([]domain.ReferenceRecord, error) {
	return nil, nil
}

func (f *fakeStore) SuggestNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	return nil, nil
}

func (f *fakeStore) SuggestIndications(ctx context.Context, prefix string, limit int) ([]string, error) {
	return nil, nil
}

func metforminStore() *fakeStore {
	return &fakeStore{records: map[string]domain.ReferenceRecord{
		"metformin": {
			Name:           "Metformin",
			Category:       "Antidiabetic",
			Indications:    []string{"Type 2 Diabetes Mellitus", "Polycystic Ovary Syndrome"},
			Manufacturers:  []string{"Merck", "Teva"},
			Classification: "Biguanide",
		},
	}}
}
