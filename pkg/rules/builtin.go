package rules

import (
	"context"
	"mime/multipart"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Predicate reports whether value satisfies a rule parameterised by arg.
// A non-nil error means the rule could not be applied at all.
type Predicate func(ctx context.Context, value, arg any) (bool, error)

// File is satisfied by uploaded file values carrying their size in bytes.
type File interface {
	Size() int64
}

var (
	emailRegex = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

	urlRegex = regexp.MustCompile(`^(https?://)[\w.-]+(?:\.[\w.-]+)+[\w\-._~:/?#\[\]@!$&'()*+,;=.]+$`)
)

func builtins() map[string]Predicate {
	return map[string]Predicate{
		NameRequired:  required,
		NameEmail:     email,
		NameURL:       url,
		NameMinLength: minLength,
		NameMaxLength: maxLength,
		NameMin:       minimum,
		NameMax:       maximum,
		NameFileSize:  fileSize,
	}
}

func required(_ context.Context, value, _ any) (bool, error) {
	if isNil(value) {
		return false, nil
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) != "", nil
	case bool:
		return v, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0, nil
	case reflect.String:
		return strings.TrimSpace(rv.String()) != "", nil
	case reflect.Bool:
		return rv.Bool(), nil
	default:
		// numbers, including zero, and any other non-nil value are present
		return true, nil
	}
}

func minLength(_ context.Context, value, arg any) (bool, error) {
	if messageArg(arg) {
		return unbounded(NameMinLength, value)
	}
	n, err := intArg(NameMinLength, arg)
	if err != nil {
		return false, err
	}
	length, empty, err := measure(NameMinLength, value)
	if err != nil || empty {
		return empty, err
	}
	return length >= n, nil
}

func maxLength(_ context.Context, value, arg any) (bool, error) {
	if messageArg(arg) {
		return unbounded(NameMaxLength, value)
	}
	n, err := intArg(NameMaxLength, arg)
	if err != nil {
		return false, err
	}
	length, empty, err := measure(NameMaxLength, value)
	if err != nil || empty {
		return empty, err
	}
	return length <= n, nil
}

// measure returns the trimmed rune count of strings or the length of
// collections. empty is true only for the zero-length string, which
// satisfies any length bound. nil measures as -1 and fails every bound.
func measure(rule string, value any) (length int, empty bool, err error) {
	if isNil(value) {
		return -1, false, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		return utf8.RuneCountInString(strings.TrimSpace(s)), s == "", nil
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), false, nil
	default:
		return 0, false, newTypeError(rule, value, "string", "slice", "map")
	}
}

func minimum(_ context.Context, value, arg any) (bool, error) {
	c, present, err := compare(NameMin, value, arg)
	if err != nil {
		return false, err
	}
	return !present || c >= 0, nil
}

func maximum(_ context.Context, value, arg any) (bool, error) {
	c, present, err := compare(NameMax, value, arg)
	if err != nil {
		return false, err
	}
	return !present || c <= 0, nil
}

// compare orders value against bound. present is false for nil values.
// A message argument has no order: present values compare as failing.
func compare(rule string, value, bound any) (c int, present bool, err error) {
	if isNil(value) {
		return 0, false, nil
	}
	if messageArg(bound) {
		if _, isTime := asTime(value); isTime {
			return failing(rule), true, nil
		}
		if _, isNum := asFloat(value); isNum {
			return failing(rule), true, nil
		}
		return 0, false, newTypeError(rule, value, "number", "time.Time")
	}

	if t, isTime := asTime(value); isTime {
		b, boundIsTime := asTime(bound)
		if !boundIsTime {
			return 0, false, argumentError(rule, bound, "time.Time")
		}
		return t.Compare(b), true, nil
	}

	f, isNum := asFloat(value)
	if !isNum {
		return 0, false, newTypeError(rule, value, "number", "time.Time")
	}
	b, boundIsNum := asFloat(bound)
	if !boundIsNum {
		return 0, false, argumentError(rule, bound, "number")
	}
	switch {
	case f < b:
		return -1, true, nil
	case f > b:
		return 1, true, nil
	default:
		return 0, true, nil
	}
}

func fileSize(_ context.Context, value, arg any) (bool, error) {
	if isNil(value) {
		return true, nil
	}
	var size int64
	switch f := value.(type) {
	case *multipart.FileHeader:
		size = f.Size
	case File:
		size = f.Size()
	default:
		return false, newTypeError(NameFileSize, value, "File")
	}
	if messageArg(arg) {
		return false, nil
	}
	kb, err := int64Arg(NameFileSize, arg)
	if err != nil {
		return false, err
	}
	return size <= kb*1024, nil
}

// messageArg reports whether arg is a failure message rather than a
// bound. Spec.WithMessage sets a message and keeps the bound.
func messageArg(arg any) bool {
	_, ok := arg.(string)
	return ok
}

// unbounded is a length rule without a bound: only the empty string
// passes.
func unbounded(rule string, value any) (bool, error) {
	_, empty, err := measure(rule, value)
	return empty, err
}

// failing returns the comparison result that fails rule.
func failing(rule string) int {
	if rule == NameMin {
		return -1
	}
	return 1
}

func email(_ context.Context, value, _ any) (bool, error) {
	return matchString(NameEmail, emailRegex, value)
}

func url(_ context.Context, value, _ any) (bool, error) {
	return matchString(NameURL, urlRegex, value)
}

func matchString(rule string, re *regexp.Regexp, value any) (bool, error) {
	if isNil(value) {
		return true, nil
	}
	s, ok := value.(string)
	if !ok {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.String {
			return false, newTypeError(rule, value, "string")
		}
		s = rv.String()
	}
	if s == "" {
		return true, nil
	}
	return re.MatchString(s), nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	default:
		return time.Time{}, false
	}
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return asFloat(rv.Elem().Interface())
	default:
		return 0, false
	}
}

func intArg(rule string, arg any) (int, error) {
	n, err := int64Arg(rule, arg)
	return int(n), err
}

func int64Arg(rule string, arg any) (int64, error) {
	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), nil
	default:
		return 0, argumentError(rule, arg, "integer")
	}
}
