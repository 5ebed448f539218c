package i18n

import (
	"context"
	"embed"
	"sync"
)

//go:embed locales/*.yaml
var localesFS embed.FS

var (
	defaultOnce       sync.Once
	defaultTranslator *Translator
	defaultErr        error
)

// Default returns the translator over the embedded catalogs. It is built once.
func Default() (*Translator, error) {
	defaultOnce.Do(func() {
		defaultTranslator, defaultErr = NewTranslator(context.Background(), NewFSAdapter(localesFS, "locales"))
	})
	return defaultTranslator, defaultErr
}

// MustDefault is Default that panics when the embedded catalogs are broken.
func MustDefault() *Translator {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}
