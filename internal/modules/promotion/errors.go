package promotion

import "errors"

var (
	ErrNotFound          = errors.New("promotion not found")
	ErrActivityNotFound  = errors.New("activity not found")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation error")
	ErrDuplicateCode     = errors.New("promotion code already exists")
	ErrExpired           = errors.New("promotion has expired")
	ErrNotYetValid       = errors.New("promotion is not yet valid")
	ErrUsageLimitReached = errors.New("promotion usage limit reached")
)
