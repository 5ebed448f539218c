// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - the default `.env` file (if present) is loaded once per process;
//   - LoadEnv loads additional files without overriding variables that are
//     already set;
//   - Load parses the environment into any struct annotated with `env` tags and
//     caches the result per type, so repeated calls are cheap and consistent;
//   - ResetCache drops cached values, which tests use between cases.
//
// # Usage
//
//	type Config struct {
//		Lang       string `env:"FORMKIT_LANG" envDefault:"en"`
//		SyncChecks bool   `env:"FORMKIT_SYNC_VALIDATION" envDefault:"false"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Use WithPrefix to load the same struct type under several prefixes; each
// prefix is cached separately.
package config
