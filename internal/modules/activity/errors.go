package activity

import "errors"

var (
	ErrNotFound          = errors.New("activity not found")
	ErrCorporateNotFound = errors.New("corporate not found")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation error")
)
