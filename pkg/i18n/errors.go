package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrNilAdapter = errors.New("i18n: adapter is nil")

	ErrJSONParsingCancelled = errors.New("i18n: json parsing cancelled")
	ErrFailedToParseJSON    = errors.New("i18n: failed to parse JSON content")

	ErrYAMLParsingCancelled = errors.New("i18n: yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("i18n: failed to parse YAML content")

	ErrLoadingCancelled  = errors.New("i18n: loading translations cancelled")
	ErrFailedToReadFile  = errors.New("i18n: failed to read translation file")
	ErrFailedToParseFile = errors.New("i18n: failed to parse translation file")
	ErrNoCatalogFiles    = errors.New("i18n: no translation files found")
	ErrUnsupportedFile   = errors.New("i18n: unsupported translation file extension")
)

// ErrLanguageNotSupported indicates that the requested language is not available.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("i18n: language not supported: %s", e.Lang)
}
