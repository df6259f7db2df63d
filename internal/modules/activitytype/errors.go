package activitytype

import "errors"

var (
	ErrNotFound   = errors.New("activity type not found")
	ErrValidation = errors.New("invalid activity type data")
)
