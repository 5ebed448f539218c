package form

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/formkit/pkg/formstate"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/statemachine"
)

type (
	// SubmitFunc receives the submission data, GetData(true) of the store.
	SubmitFunc func(ctx context.Context, data map[string]any) error

	// PrepareFunc runs once before the form accepts input, typically to
	// load server-side defaults into the store.
	PrepareFunc func(ctx context.Context, s *formstate.Store) error
)

type (
	phase string
	event string
)

const (
	phaseIdle       phase = "idle"
	phaseSubmitting phase = "submitting"

	eventSubmit event = "submit"
	eventDone   event = "done"
)

// Controller adds dirty tracking and the prepare and submit lifecycle to a
// store.
type Controller struct {
	store         *formstate.Store
	submit        SubmitFunc
	prepare       PrepareFunc
	allowPristine bool
	logger        *slog.Logger

	lifecycle *statemachine.Machine[phase, event]
	ready     atomic.Bool

	mu       sync.RWMutex
	snapshot formstate.Snapshot
	dirty    []string

	stop func()
}

// New wraps store. Dirtiness is measured against a snapshot taken now and
// retaken after Prepare, a successful Submit, and Reset.
func New(store *formstate.Store, submit SubmitFunc, opts ...Option) (*Controller, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if submit == nil {
		return nil, ErrNilSubmit
	}

	c := &Controller{
		store:  store,
		submit: submit,
		logger: logger.Discard(),
		lifecycle: statemachine.MustNew[phase, event](phaseIdle,
			statemachine.WithTransition[phase, event](phaseIdle, phaseSubmitting, eventSubmit),
			statemachine.WithTransition[phase, event](phaseSubmitting, phaseIdle, eventDone),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("form"), logger.FormID(store.ID()))
	c.ready.Store(c.prepare == nil)
	c.snapshot = store.Snapshot()

	c.stop = store.Observe(func(ch formstate.Change) {
		if ch.Kind == formstate.ChangeValue || ch.Kind == formstate.ChangeReset {
			c.recompute()
		}
	})
	return c, nil
}

// Store returns the wrapped store.
func (c *Controller) Store() *formstate.Store { return c.store }

// IsDirty reports whether any field differs from the snapshot.
func (c *Controller) IsDirty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.dirty) > 0
}

// DirtyFields returns the keys that differ from the snapshot.
func (c *Controller) DirtyFields() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.dirty)
}

// IsSubmitting reports whether a Submit call is running.
func (c *Controller) IsSubmitting() bool { return c.lifecycle.Is(phaseSubmitting) }

// IsReady reports whether the form may accept input.
func (c *Controller) IsReady() bool { return c.ready.Load() }

// Snapshot returns a copy of the dirty-tracking baseline.
func (c *Controller) Snapshot() formstate.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.Clone()
}

func (c *Controller) recompute() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = diff(c.store, c.snapshot)
}

// rebase retakes the snapshot under mu so a write landing after it is
// recomputed against the new snapshot.
func (c *Controller) rebase() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = c.store.Snapshot()
	c.dirty = nil
}

// Prepare runs the prepare hook, then marks the form ready and retakes the
// snapshot. A hook error is returned as is and changes nothing.
func (c *Controller) Prepare(ctx context.Context) error {
	if c.prepare != nil {
		if err := c.prepare(ctx, c.store); err != nil {
			c.logger.WarnContext(ctx, "prepare failed", logger.Error(err))
			return err
		}
	}
	c.rebase()
	c.ready.Store(true)
	c.logger.DebugContext(ctx, "form prepared")
	return nil
}

// Submit validates the store without writing verdicts. When invalid it
// validates again writing verdicts and stops. When valid but pristine it
// stops silently unless pristine submits are allowed. Otherwise it calls
// the handler with the submission data and retakes the snapshot.
//
// A handler error is returned as is with OutcomeFailed. Validator errors
// come back with OutcomeInvalid. A concurrent call returns
// ErrSubmitInProgress. IsSubmitting is false again on every return.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	if err := c.lifecycle.Fire(ctx, eventSubmit); err != nil {
		if errors.Is(err, statemachine.ErrNoTransition) {
			return OutcomeNone, ErrSubmitInProgress
		}
		return OutcomeNone, err
	}
	defer func() {
		// submitting always has a way back to idle
		_ = c.lifecycle.Fire(context.WithoutCancel(ctx), eventDone)
	}()

	start := time.Now()
	outcome, err := c.doSubmit(ctx)

	attrs := []any{logger.Outcome(outcome), logger.Duration(time.Since(start))}
	if err != nil {
		c.logger.WarnContext(ctx, "submit failed", append(attrs, logger.Error(err))...)
	} else {
		c.logger.InfoContext(ctx, "submit finished", attrs...)
	}
	return outcome, err
}

func (c *Controller) doSubmit(ctx context.Context) (Outcome, error) {
	quietErr := c.store.ValidateQuiet(ctx)
	if ctx.Err() != nil {
		return OutcomeNone, ctx.Err()
	}

	if !c.store.IsValid() {
		if err := c.store.Validate(ctx); err != nil {
			return OutcomeInvalid, err
		}
		return OutcomeInvalid, quietErr
	}

	if !c.IsDirty() && !c.allowPristine {
		return OutcomePristine, nil
	}

	if err := c.submit(ctx, c.store.GetData(true)); err != nil {
		return OutcomeFailed, err
	}

	c.rebase()
	return OutcomeSubmitted, nil
}

// Reset restores the snapshot values into the store, clearing verdicts
// and overrides.
func (c *Controller) Reset(ctx context.Context) error {
	if err := c.store.ResetTo(ctx, c.Snapshot()); err != nil {
		return err
	}
	c.recompute()
	return nil
}

// Close stops dirty tracking. The store is left open.
func (c *Controller) Close() {
	c.stop()
}
