// Package application contains the orchestration and decision pipeline:
// case routing, bounded-time collector execution, evidence pooling,
// weighted scoring, and the Go/No-Go decision.
package application

import (
	"strings"

	"github.com/chiku1101/druggs/internal/domain"
)

// Required collector sets per case. Reduced sets skip the collectors
// that have nothing to query without a target condition.
var (
	fullCollectorSet = []domain.CollectorID{
		domain.CollectorLiterature,
		domain.CollectorTrials,
		domain.CollectorPatents,
		domain.CollectorRegulatory,
		domain.CollectorMarket,
	}

	// Composition analysis and single-input cases ground themselves in
	// literature and regulatory status only.
	reducedCollectorSet = []domain.CollectorID{
		domain.CollectorLiterature,
		domain.CollectorRegulatory,
	}
)

// Classification is the case router's output: the detected case and the
// ordered set of collectors it requires.
type Classification struct {
	// Case is the detected input case.
	Case domain.Case

	// Subject and Condition are the normalized (trimmed, lower-cased)
	// inputs the collectors will receive.
	Subject   string
	Condition string

	// Required is the non-empty ordered collector set for the case.
	Required []domain.CollectorID
}

// Classify inspects which of {subject, condition} were supplied and
// chooses the case being solved plus the collectors required for it.
// It is pure, never fails, and applies only trim+lowercase
// normalization; collectors do their own fuzzy matching.
//
// When neither input is supplied the degenerate subject-only case with
// an empty subject is returned; callers that consider that malformed
// must reject it before orchestration.
func Classify(subject, condition string, ingredientMode bool) Classification {
	subject = normalize(subject)
	condition = normalize(condition)

	classification := Classification{Subject: subject, Condition: condition}

	switch {
	case ingredientMode && subject != "":
		classification.Case = domain.CaseIngredientMode
		classification.Required = reducedCollectorSet
	case subject != "" && condition != "":
		classification.Case = domain.CaseSubjectAndCondition
		classification.Required = fullCollectorSet
	case subject != "":
		classification.Case = domain.CaseSubjectOnly
		classification.Required = reducedCollectorSet
	case condition != "":
		classification.Case = domain.CaseConditionOnly
		classification.Required = reducedCollectorSet
	default:
		classification.Case = domain.CaseSubjectOnly
		classification.Required = reducedCollectorSet
	}

	classification.Required = append([]domain.CollectorID(nil), classification.Required...)
	return classification
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
