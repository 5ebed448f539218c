package formstate

import (
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger.OrDiscard(l)
	}
}

// WithSyncValidation runs re-validations triggered by value changes inline,
// before the mutating call returns. By default they run in the background
// and Settle waits for them.
func WithSyncValidation() Option {
	return func(s *Store) {
		s.syncMode = true
	}
}

// WithID sets the store identifier used in logs. Defaults to a random UUID.
func WithID(id string) Option {
	return func(s *Store) {
		if id != "" {
			s.id = id
		}
	}
}
