package formkit

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/formkit/pkg/formstate"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

// Kit shares a logger, a message catalog and a rule engine between forms.
// It is safe for concurrent use.
type Kit struct {
	cfg        Config
	logger     *slog.Logger
	translator *i18n.Translator
	engine     *rules.Engine
	ruleOpts   []rules.Option
}

// Option configures a Kit.
type Option func(*Kit)

// WithLogger replaces the logger built from Config.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kit) {
		k.logger = l
	}
}

// WithTranslator replaces the catalog loaded from Config.
func WithTranslator(tr *i18n.Translator) Option {
	return func(k *Kit) {
		k.translator = tr
	}
}

// WithRuleOptions passes extra options, such as custom rules, to the rule engine.
func WithRuleOptions(opts ...rules.Option) Option {
	return func(k *Kit) {
		k.ruleOpts = append(k.ruleOpts, opts...)
	}
}

// New builds a Kit from cfg.
func New(ctx context.Context, cfg Config, opts ...Option) (*Kit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	k := &Kit{cfg: cfg}
	for _, opt := range opts {
		opt(k)
	}

	if k.logger == nil {
		k.logger = logger.New(
			logger.WithLevelName(cfg.LogLevel),
			logger.WithFormat(cfg.logFormat()),
			logger.WithOutput(os.Stderr),
		)
	}

	if k.translator == nil {
		tr, err := loadTranslator(ctx, cfg, k.logger)
		if err != nil {
			return nil, err
		}
		k.translator = tr
	}

	engineOpts := append([]rules.Option{
		rules.WithCatalog(k.translator, cfg.Lang),
		rules.WithLogger(k.logger),
	}, k.ruleOpts...)
	k.engine = rules.New(engineOpts...)

	k.logger.DebugContext(ctx, "formkit ready",
		logger.Lang(k.engine.Language()),
		slog.Bool("sync_validation", cfg.SyncValidation),
		slog.Bool("allow_pristine_submit", cfg.AllowPristineSubmit),
	)
	return k, nil
}

func loadTranslator(ctx context.Context, cfg Config, l *slog.Logger) (*i18n.Translator, error) {
	if cfg.MessagesPath == "" {
		return i18n.Default()
	}
	return i18n.NewTranslator(ctx, i18n.NewFileAdapter(nil, cfg.MessagesPath),
		i18n.WithLogger(l),
		i18n.WithMissingTranslationsLogging(true),
	)
}

// Config returns the configuration the kit was built with.
func (k *Kit) Config() Config { return k.cfg }

// Logger returns the kit logger shared by its forms.
func (k *Kit) Logger() *slog.Logger { return k.logger }

// Translator returns the message translator for the configured language.
func (k *Kit) Translator() *i18n.Translator { return k.translator }

// Engine returns the rule engine behind Rules.
func (k *Kit) Engine() *rules.Engine { return k.engine }

// Rules returns a validator evaluating specs in order with the kit's engine.
func (k *Kit) Rules(specs ...rules.Spec) formstate.ValidateFunc {
	return k.engine.Validator(rules.Rules(specs...), nil)
}

// RulesWithMessages is Rules with per-field message overrides.
func (k *Kit) RulesWithMessages(overrides rules.Messages, specs ...rules.Spec) formstate.ValidateFunc {
	return k.engine.Validator(rules.Rules(specs...), overrides)
}
