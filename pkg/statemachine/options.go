package statemachine

// Option configures a Machine during construction.
type Option[S, E comparable] func(*Machine[S, E]) error

// TransitionOption attaches guards and actions to one transition.
type TransitionOption[S, E comparable] func(*transition[S, E])

// WithTransition adds a transition from one state to another on event.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		var t transition[S, E]
		for _, opt := range opts {
			opt(&t)
		}
		m.add(from, to, event, t.guards, t.actions)
		return nil
	}
}

// WithGuard adds a guard to a transition.
func WithGuard[S, E comparable](guard Guard[S, E]) TransitionOption[S, E] {
	return func(t *transition[S, E]) {
		if guard != nil {
			t.guards = append(t.guards, guard)
		}
	}
}

// WithAction adds an action to a transition.
func WithAction[S, E comparable](action Action[S, E]) TransitionOption[S, E] {
	return func(t *transition[S, E]) {
		if action != nil {
			t.actions = append(t.actions, action)
		}
	}
}
