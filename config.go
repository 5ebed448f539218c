package formkit

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Config holds the environment-driven settings of a Kit.
type Config struct {
	// AllowPristineSubmit lets Submit call the handler for untouched forms.
	AllowPristineSubmit bool `env:"FORMKIT_ALLOW_PRISTINE_SUBMIT" envDefault:"false"`
	// SyncValidation re-validates changed fields before the setter returns.
	SyncValidation bool `env:"FORMKIT_SYNC_VALIDATION" envDefault:"false"`
	// Lang selects the rule message language. It is matched against the catalog.
	Lang string `env:"FORMKIT_LANG" envDefault:"en"`
	// MessagesPath points to a YAML or JSON catalog replacing the embedded one.
	MessagesPath string `env:"FORMKIT_MESSAGES_PATH"`
	LogLevel     string `env:"FORMKIT_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"FORMKIT_LOG_FORMAT" envDefault:"text"`
}

// DefaultConfig returns the settings used when no environment is present.
func DefaultConfig() Config {
	return Config{
		Lang:      "en",
		LogLevel:  "info",
		LogFormat: string(logger.FormatText),
	}
}

// LoadConfig reads Config from the environment and an optional .env file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that would fail later in New.
func (c Config) Validate() error {
	switch logger.Format(strings.ToLower(c.LogFormat)) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.LogLevel != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
		}
	}
	return nil
}

func (c Config) logFormat() logger.Format {
	if c.LogFormat == "" {
		return logger.FormatText
	}
	return logger.Format(strings.ToLower(c.LogFormat))
}
