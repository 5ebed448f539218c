package form

import (
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Option configures a Controller.
type Option func(*Controller)

// WithPrepare sets a hook run by Prepare. A controller with a prepare hook
// is not ready until Prepare succeeds.
func WithPrepare(fn PrepareFunc) Option {
	return func(c *Controller) {
		c.prepare = fn
	}
}

// WithAllowPristineSubmit lets Submit call the handler when nothing
// changed since the last snapshot.
func WithAllowPristineSubmit(allow bool) Option {
	return func(c *Controller) {
		c.allowPristine = allow
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger.OrDiscard(l)
	}
}
