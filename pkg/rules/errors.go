package rules

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownRule is returned when a Set names a rule the engine does not know.
	ErrUnknownRule = errors.New("rules: unknown rule")

	// ErrInvalidArgument is returned when a rule argument has the wrong type.
	ErrInvalidArgument = errors.New("rules: invalid rule argument")

	// ErrInvalidType is the sentinel wrapped by every *TypeError.
	ErrInvalidType = errors.New("rules: value type not supported by rule")
)

// TypeError reports a value whose type a rule cannot validate.
type TypeError struct {
	Rule    string
	Allowed []string
	Got     string
}

func (e *TypeError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, typ := range e.Allowed {
		allowed[i] = "`" + typ + "`"
	}
	return fmt.Sprintf("%s validation only allows values of type %s, got %s", e.Rule, strings.Join(allowed, ", "), e.Got)
}

func (e *TypeError) Unwrap() error { return ErrInvalidType }

func newTypeError(rule string, value any, allowed ...string) *TypeError {
	return &TypeError{Rule: rule, Allowed: allowed, Got: fmt.Sprintf("%T", value)}
}

func argumentError(rule string, arg any, want string) error {
	return fmt.Errorf("%w: %s expects %s, got %T", ErrInvalidArgument, rule, want, arg)
}
