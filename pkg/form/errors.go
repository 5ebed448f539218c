package form

import "errors"

var (
	ErrNilStore         = errors.New("form: store is nil")
	ErrNilSubmit        = errors.New("form: submit handler is nil")
	ErrSubmitInProgress = errors.New("form: submit already in progress")
)
