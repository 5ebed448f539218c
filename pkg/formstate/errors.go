package formstate

import (
	"errors"
	"fmt"
)

var (
	// ErrNotObservable is returned by New for a nil tree.
	ErrNotObservable = errors.New("formstate: tree is nil")

	// ErrInvalidTree reports a malformed field tree: empty branches, nil
	// nodes, or keys that are empty or contain the path separator.
	ErrInvalidTree = errors.New("formstate: invalid field tree")

	ErrUnknownField  = errors.New("formstate: unknown field")
	ErrNoValidator   = errors.New("formstate: field has no validate function")
	ErrShapeMismatch = errors.New("formstate: data does not match the tree shape")
	ErrClosed        = errors.New("formstate: store is closed")
)

// FieldError wraps an error returned by a field hook.
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("formstate: field %q: %v", e.Key, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldError(key string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FieldError
	if errors.As(err, &fe) && fe.Key == key {
		return err
	}
	return &FieldError{Key: key, Err: err}
}
