package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// FormID records the form store identifier under the key "form_id".
func FormID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("form_id", id)
}

// FieldKey records a flat field key under the key "field".
func FieldKey(key string) slog.Attr {
	return slog.String("field", key)
}

// FieldKeys records a list of flat field keys under the key "fields".
func FieldKeys(keys []string) slog.Attr {
	return slog.Any("fields", keys)
}

// Rule records a validation rule name under the key "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// Outcome records a submit outcome under the key "outcome".
func Outcome(outcome any) slog.Attr {
	return slog.Any("outcome", outcome)
}

// Token records a validation run token under the key "token".
func Token(token uint64) slog.Attr {
	return slog.Uint64("token", token)
}

// Lang records a language code under the key "lang".
func Lang(lang string) slog.Attr {
	return slog.String("lang", lang)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
