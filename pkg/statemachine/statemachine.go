package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Guard decides at fire time whether a transition may be taken.
type Guard[S, E comparable] func(ctx context.Context, from S, event E) bool

// Action runs before the state changes. An error aborts the transition.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E) error

type transition[S, E comparable] struct {
	to      S
	guards  []Guard[S, E]
	actions []Action[S, E]
}

// Machine is a goroutine-safe finite state machine over comparable state
// and event types.
type Machine[S, E comparable] struct {
	mu          sync.RWMutex
	initial     S
	current     S
	transitions map[S]map[E][]transition[S, E]
}

// New creates a machine in state initial.
func New[S, E comparable](initial S, opts ...Option[S, E]) (*Machine[S, E], error) {
	m := &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[S]map[E][]transition[S, E]),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is New that panics on a failing option.
func MustNew[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("statemachine: %v", err))
	}
	return m
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is in state s.
func (m *Machine[S, E]) Is(s S) bool { return m.Current() == s }

func (m *Machine[S, E]) add(from, to S, event E, guards []Guard[S, E], actions []Action[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transitions[from] == nil {
		m.transitions[from] = make(map[E][]transition[S, E])
	}
	// several transitions per from/event pair branch on their guards
	m.transitions[from][event] = append(m.transitions[from][event], transition[S, E]{
		to:      to,
		guards:  guards,
		actions: actions,
	})
}

// Fire takes the first transition for event whose guards all pass. The
// state is held locked for the duration, so concurrent Fire calls are
// serialised and at most one of two racing identical events succeeds when
// the second finds no transition out of the new state.
func (m *Machine[S, E]) Fire(ctx context.Context, event E) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return &NoTransitionError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
	}

	for _, t := range candidates {
		if !m.allowed(ctx, t, event) {
			continue
		}
		for _, action := range t.actions {
			if err := action(ctx, m.current, t.to, event); err != nil {
				return fmt.Errorf("statemachine: action failed: %w", err)
			}
		}
		m.current = t.to
		return nil
	}
	return &RejectedError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
}

// CanFire reports whether Fire(event) would find an allowed transition.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.transitions[m.current][event] {
		if m.allowed(ctx, t, event) {
			return true
		}
	}
	return false
}

func (m *Machine[S, E]) allowed(ctx context.Context, t transition[S, E], event E) bool {
	for _, guard := range t.guards {
		if !guard(ctx, m.current, event) {
			return false
		}
	}
	return true
}

// Reset returns the machine to its initial state.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}
