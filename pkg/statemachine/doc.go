// Package statemachine implements small goroutine-safe finite state
// machines over comparable state and event types.
//
//	type phase string
//	type event string
//
//	m := statemachine.MustNew[phase, event]("idle",
//		statemachine.WithTransition[phase, event]("idle", "busy", "start"),
//		statemachine.WithTransition[phase, event]("busy", "idle", "stop"),
//	)
//	if err := m.Fire(ctx, "start"); errors.Is(err, statemachine.ErrNoTransition) {
//		// already busy
//	}
//
// Transitions may carry guards, which must all pass, and actions, which run
// before the state changes and abort the transition on error. When several
// transitions share a state and event the first allowed one wins.
//
// pkg/form drives its submit lifecycle with a Machine so that a second
// submit while one is running is rejected atomically.
package statemachine
