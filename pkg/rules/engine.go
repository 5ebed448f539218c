package rules

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Engine evaluates ordered rule sets against values.
// It is safe for concurrent use once constructed.
type Engine struct {
	predicates map[string]Predicate
	custom     Messages
	tr         *i18n.Translator
	lang       string
	defaults   Messages
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRule registers a custom predicate under name. Registering a built-in
// name replaces the built-in predicate.
func WithRule(name string, p Predicate) Option {
	return func(e *Engine) {
		if name != "" && p != nil {
			e.predicates[name] = p
		}
	}
}

// WithMessage sets the engine-wide message for a rule.
func WithMessage(name string, msg Message) Option {
	return func(e *Engine) {
		if msg != nil {
			e.custom[name] = msg
		}
	}
}

// WithMessages merges msgs into the engine-wide message table.
func WithMessages(msgs Messages) Option {
	return func(e *Engine) {
		for name, msg := range msgs {
			if msg != nil {
				e.custom[name] = msg
			}
		}
	}
}

// WithCatalog takes default messages from tr in lang.
func WithCatalog(tr *i18n.Translator, lang string) Option {
	return func(e *Engine) {
		if tr != nil {
			e.tr = tr
		}
		if lang != "" {
			e.lang = lang
		}
	}
}

// WithLanguage selects the catalog language for default messages.
func WithLanguage(lang string) Option {
	return func(e *Engine) {
		if lang != "" {
			e.lang = lang
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.OrDiscard(l)
	}
}

// New creates an engine with the built-in rules and the embedded
// English catalog.
func New(opts ...Option) *Engine {
	e := &Engine{
		predicates: builtins(),
		custom:     Messages{},
		lang:       i18n.DefaultLanguage,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tr == nil {
		e.tr = i18n.MustDefault()
	}
	e.lang = e.tr.Match(e.lang)
	e.defaults = CatalogMessages(e.tr, e.lang)
	return e
}

// Language returns the catalog language used for default messages.
func (e *Engine) Language() string { return e.lang }

// Has reports whether a rule named name is registered.
func (e *Engine) Has(name string) bool {
	_, ok := e.predicates[name]
	return ok
}

// Messages returns a copy of the engine-wide message table, defaults
// included.
func (e *Engine) Messages() Messages {
	out := maps.Clone(e.defaults)
	maps.Copy(out, e.custom)
	return out
}

// Apply evaluates set against value in order and stops at the first
// failing rule. It returns the resolved failure message and true on
// failure, or "" and false when every enabled rule passes. A non-nil
// error reports a configuration problem: an unknown rule, an argument
// of the wrong type or a value the rule cannot validate.
func (e *Engine) Apply(ctx context.Context, value any, set Set, overrides Messages) (string, bool, error) {
	for _, spec := range set {
		if !spec.Enabled() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", false, err
		}

		p, ok := e.predicates[spec.Name]
		if !ok {
			return "", false, fmt.Errorf("%w: %s", ErrUnknownRule, spec.Name)
		}

		passed, err := p(ctx, value, spec.Arg)
		if err != nil {
			e.logger.WarnContext(ctx, "rule evaluation failed", logger.Rule(spec.Name), logger.Error(err))
			return "", false, err
		}
		if passed {
			continue
		}

		e.logger.DebugContext(ctx, "rule failed", logger.Rule(spec.Name))
		return e.message(spec, value, overrides), true, nil
	}
	return "", false, nil
}

func (e *Engine) message(spec Spec, value any, overrides Messages) string {
	if spec.Message != "" {
		return spec.Message
	}
	if s, ok := spec.Arg.(string); ok {
		return s
	}
	if msg, ok := overrides.lookup(spec.Name); ok {
		return msg.Render(value, spec.Arg)
	}
	if msg, ok := e.custom.lookup(spec.Name); ok {
		return msg.Render(value, spec.Arg)
	}
	if msg, ok := e.defaults.lookup(spec.Name); ok {
		if s := msg.Render(value, spec.Arg); s != "" {
			return s
		}
	}
	return spec.Name + " error"
}
