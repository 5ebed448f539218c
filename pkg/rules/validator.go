package rules

import (
	"context"

	"github.com/dmitrymomot/formkit/pkg/formstate"
)

// Validator adapts a rule set to a field validator. A failing rule yields
// an invalid verdict carrying its message.
func (e *Engine) Validator(set Set, overrides Messages) formstate.ValidateFunc {
	return func(ctx context.Context, value any, _ formstate.Reader) (formstate.Verdict, error) {
		msg, failed, err := e.Apply(ctx, value, set, overrides)
		if err != nil {
			return formstate.Verdict{}, err
		}
		if failed {
			return formstate.Invalid(msg), nil
		}
		return formstate.Valid(), nil
	}
}
