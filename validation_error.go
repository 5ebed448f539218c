package formkit

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/formstate"
)

// ValidationError represents field validation errors keyed by flat field key.
// It's based on url.Values to leverage built-in string slice handling.
type ValidationError url.Values

// ValidationErrorOf collects the visible invalid verdicts of s. Fields
// flagged without a message are reported with an empty string.
func ValidationErrorOf(s *formstate.Store) ValidationError {
	e := NewValidationError()
	for key, v := range s.Errors() {
		if v.IsInvalid() {
			e.Add(key, v.Message())
		}
	}
	return e
}

// Error implements the error interface.
// Fields are listed in key order with their first message.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, field := range e.Fields() {
		msg := e.Get(field)
		if msg == "" {
			parts = append(parts, field)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}

	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// NewValidationError creates a new validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add adds an error message for a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first error message for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has checks if a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// Fields returns the failed field keys in order.
func (e ValidationError) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Nested returns the first message per field in the shape of the form,
// ready to be passed back to Store.SetErrors.
func (e ValidationError) Nested() map[string]any {
	flat := make(map[string]any, len(e))
	for field := range e {
		flat[field] = e.Get(field)
	}
	nested, err := formstate.Unflatten(flat)
	if err != nil {
		// keys come from one store, so they cannot conflict
		return flat
	}
	return nested
}
