package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrNoTransition = errors.New("statemachine: no transition available")
	ErrRejected     = errors.New("statemachine: transition rejected by guards")
)

// NoTransitionError reports an event with no transition out of the
// current state.
type NoTransitionError struct {
	State string
	Event string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("statemachine: no transition from state '%s' for event '%s'", e.State, e.Event)
}

func (e *NoTransitionError) Unwrap() error { return ErrNoTransition }

// RejectedError reports an event whose transitions were all blocked by
// guards.
type RejectedError struct {
	State string
	Event string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("statemachine: transition from state '%s' for event '%s' was rejected by guards", e.State, e.Event)
}

func (e *RejectedError) Unwrap() error { return ErrRejected }
