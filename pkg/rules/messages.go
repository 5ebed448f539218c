package rules

import (
	"fmt"
	"reflect"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

// DateLayout renders date bounds in default messages.
const DateLayout = "2006-01-02"

// Message renders the failure text of a rule. It is evaluated only when
// the rule fails.
type Message interface {
	Render(value, arg any) string
}

// Text is a literal message.
type Text string

func (t Text) Render(_, _ any) string { return string(t) }

// Formatter builds a message from the failing value and the rule argument.
type Formatter func(value, arg any) string

func (f Formatter) Render(value, arg any) string { return f(value, arg) }

// Messages maps rule names to messages.
type Messages map[string]Message

func (m Messages) lookup(name string) (Message, bool) {
	if m == nil {
		return nil, false
	}
	msg, ok := m[name]
	return msg, ok && msg != nil
}

// Catalog keys of the built-in rule messages.
const (
	KeyRequired  = "core.validation.required"
	KeyEmail     = "core.validation.email"
	KeyURL       = "core.validation.url"
	KeyMin       = "core.validation.min"
	KeyMax       = "core.validation.max"
	KeyMinLength = "core.validation.min_length"
	KeyMaxLength = "core.validation.max_length"
	KeyMinDate   = "core.validation.min_date"
	KeyMaxDate   = "core.validation.max_date"
	KeyFileSize  = "core.validation.file_size"
)

// CatalogMessages returns the default messages of the built-in rules
// translated into lang.
func CatalogMessages(tr *i18n.Translator, lang string) Messages {
	t := func(key string, args ...string) string {
		return tr.T(lang, key, args...)
	}

	return Messages{
		NameRequired: Formatter(func(_, _ any) string { return t(KeyRequired) }),
		NameEmail:    Formatter(func(_, _ any) string { return t(KeyEmail) }),
		NameURL:      Formatter(func(_, _ any) string { return t(KeyURL) }),
		NameMinLength: Formatter(func(value, arg any) string {
			if isCollection(value) {
				return t(KeyMin, "min", fmt.Sprint(arg))
			}
			return t(KeyMinLength, "min", fmt.Sprint(arg))
		}),
		NameMaxLength: Formatter(func(value, arg any) string {
			if isCollection(value) {
				return t(KeyMax, "max", fmt.Sprint(arg))
			}
			return t(KeyMaxLength, "max", fmt.Sprint(arg))
		}),
		NameMin: Formatter(func(_, arg any) string {
			if d, ok := asTime(arg); ok {
				return t(KeyMinDate, "date", d.Format(DateLayout))
			}
			return t(KeyMin, "min", fmt.Sprint(arg))
		}),
		NameMax: Formatter(func(_, arg any) string {
			if d, ok := asTime(arg); ok {
				return t(KeyMaxDate, "date", d.Format(DateLayout))
			}
			return t(KeyMax, "max", fmt.Sprint(arg))
		}),
		NameFileSize: Formatter(func(_, arg any) string {
			return t(KeyFileSize, "maxFileSize", fmt.Sprintf("%vkb", arg))
		}),
	}
}

func isCollection(value any) bool {
	if value == nil {
		return false
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

