package transform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/dmitrymomot/formkit/pkg/formstate"
)

// String returns a Set hook that runs string inputs through fns. nil is
// stored as nil; other types fail with ErrNotString.
func String(fns ...func(string) string) formstate.SetFunc {
	return func(_ context.Context, input any, _ formstate.Reader) (any, error) {
		if input == nil {
			return nil, nil
		}
		s, ok := input.(string)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrNotString, input)
		}
		return Apply(s, fns...), nil
	}
}

// Submit returns a Get hook that runs string values through fns on
// submission. Other values pass through.
func Submit(fns ...func(string) string) formstate.GetFunc {
	return func(value any, _ formstate.Reader) any {
		s, ok := value.(string)
		if !ok {
			return value
		}
		return Apply(s, fns...)
	}
}

// NilIfEmpty is a Get hook that submits blank strings as nil.
func NilIfEmpty(value any, _ formstate.Reader) any {
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	return value
}

// Int is a Set hook parsing the input into an int. Blank strings store nil.
func Int(_ context.Context, input any, _ formstate.Reader) (any, error) {
	if blankInput(input) {
		return nil, nil
	}
	n, err := cast.ToIntE(trimmed(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return n, nil
}

// Float is a Set hook parsing the input into a float64. Blank strings
// store nil.
func Float(_ context.Context, input any, _ formstate.Reader) (any, error) {
	if blankInput(input) {
		return nil, nil
	}
	f, err := cast.ToFloat64E(trimmed(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return f, nil
}

// Bool is a Set hook parsing checkbox style input. Blank strings and nil
// store false.
func Bool(_ context.Context, input any, _ formstate.Reader) (any, error) {
	if blankInput(input) {
		return false, nil
	}
	if s, ok := input.(string); ok && strings.EqualFold(strings.TrimSpace(s), "on") {
		return true, nil
	}
	b, err := cast.ToBoolE(trimmed(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return b, nil
}

// Date returns a Set hook parsing strings with layout into time.Time.
// time.Time inputs are stored as is and blank strings store nil.
func Date(layout string) formstate.SetFunc {
	return func(_ context.Context, input any, _ formstate.Reader) (any, error) {
		if blankInput(input) {
			return nil, nil
		}
		switch v := input.(type) {
		case time.Time:
			return v, nil
		case string:
			t, err := time.Parse(layout, strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrParse, err)
			}
			return t, nil
		default:
			t, err := cast.ToTimeE(input)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrParse, err)
			}
			return t, nil
		}
	}
}

// List returns a Set hook splitting a string on sep into trimmed non-empty
// items. String slices are cleaned the same way.
func List(sep string) formstate.SetFunc {
	return func(_ context.Context, input any, _ formstate.Reader) (any, error) {
		var parts []string
		switch v := input.(type) {
		case nil:
			return []string{}, nil
		case string:
			parts = strings.Split(v, sep)
		case []string:
			parts = v
		default:
			s, err := cast.ToStringSliceE(input)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrParse, err)
			}
			parts = s
		}

		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
}

// Chain runs Set hooks in order, feeding each result to the next.
func Chain(hooks ...formstate.SetFunc) formstate.SetFunc {
	return func(ctx context.Context, input any, r formstate.Reader) (any, error) {
		v := input
		for _, hook := range hooks {
			out, err := hook(ctx, v, r)
			if err != nil {
				return nil, err
			}
			v = out
		}
		return v, nil
	}
}

func blankInput(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func trimmed(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}
