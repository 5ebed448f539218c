package transform

import "errors"

var (
	ErrNotString = errors.New("transform: value is not a string")
	ErrParse     = errors.New("transform: cannot parse value")
)
