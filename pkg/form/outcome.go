package form

// Outcome tells how a Submit call ended.
type Outcome uint8

const (
	// OutcomeNone is returned alongside ErrSubmitInProgress.
	OutcomeNone Outcome = iota
	// OutcomeSubmitted means the handler ran and succeeded.
	OutcomeSubmitted
	// OutcomeInvalid means validation failed and verdicts were written.
	OutcomeInvalid
	// OutcomePristine means nothing changed and pristine submits are off.
	OutcomePristine
	// OutcomeFailed means the handler returned an error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeInvalid:
		return "invalid"
	case OutcomePristine:
		return "pristine"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}
