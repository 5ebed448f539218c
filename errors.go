package formkit

import "errors"

var (
	// ErrInvalidConfig is returned when a Config field holds an unusable value.
	ErrInvalidConfig = errors.New("formkit: invalid config")

	// ErrDecode is returned when form data cannot be decoded into a struct.
	ErrDecode = errors.New("formkit: failed to decode form data")
)
