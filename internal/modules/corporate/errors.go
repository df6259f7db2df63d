package corporate

import "errors"

var (
	ErrNotFound           = errors.New("corporate not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrValidation         = errors.New("invalid corporate data")
)
