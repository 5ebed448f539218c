package formkit

import (
	"errors"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Decode copies submitted form data into dst, a pointer to a struct. Fields
// are matched by their `form` tag, falling back to a case-insensitive name
// match. Strings convert to numbers and booleans, and RFC 3339 or
// 2006-01-02 strings convert to time.Time.
//
//	type Signup struct {
//		Email   string `form:"email"`
//		Age     int    `form:"age"`
//		Address struct {
//			City string `form:"city"`
//		} `form:"address"`
//	}
func Decode(data map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(stringToTime, mapstructure.StringToSliceHookFunc(",")),
		WeaklyTypedInput: true,
		TagName:          "form",
		Result:           dst,
	})
	if err != nil {
		return errors.Join(ErrDecode, err)
	}
	if err := dec.Decode(data); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

func stringToTime(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != timeType {
		return data, nil
	}
	s := reflect.ValueOf(data).String()
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
