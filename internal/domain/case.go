package domain

// Case classifies which of {subject, condition} were supplied with a
// request. The case is determined once by the case router and is
// immutable afterward; it selects the required collector set.
type Case int

const (
	// CaseSubjectOnly means only a drug/subject was supplied. Evidence
	// that needs a target condition (trials, patents, market) is skipped.
	CaseSubjectOnly Case = iota + 1

	// CaseConditionOnly means only a target condition was supplied.
	CaseConditionOnly

	// CaseSubjectAndCondition means both inputs were supplied and the
	// full five-collector analysis runs.
	CaseSubjectAndCondition

	// CaseIngredientMode means the subject's composition is analyzed for
	// alternative uses; only composition-relevant collectors run.
	CaseIngredientMode
)

// String returns the stable wire name of the case.
func (c Case) String() string {
	switch c {
	case CaseSubjectOnly:
		return "SUBJECT_ONLY"
	case CaseConditionOnly:
		return "CONDITION_ONLY"
	case CaseSubjectAndCondition:
		return "SUBJECT_AND_CONDITION"
	case CaseIngredientMode:
		return "INGREDIENT_MODE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler so cases serialize as
// their wire names in JSON payloads.
func (c Case) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler for the wire names
// produced by MarshalText. Unknown names decode to the zero Case.
func (c *Case) UnmarshalText(text []byte) error {
	switch string(text) {
	case "SUBJECT_ONLY":
		*c = CaseSubjectOnly
	case "CONDITION_ONLY":
		*c = CaseConditionOnly
	case "SUBJECT_AND_CONDITION":
		*c = CaseSubjectAndCondition
	case "INGREDIENT_MODE":
		*c = CaseIngredientMode
	default:
		*c = 0
	}
	return nil
}
