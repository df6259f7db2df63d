package user

import "errors"

var (
	ErrNotFound   = errors.New("user not found")
	ErrForbidden  = errors.New("insufficient permissions")
	ErrValidation = errors.New("invalid user data")
)
