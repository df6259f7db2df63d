package booking

import "errors"

var (
	ErrNotFound         = errors.New("booking not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrActivityNotFound = errors.New("activity not found or not available")
	ErrValidation       = errors.New("validation error")
	ErrInvalidStatus    = errors.New("unknown status")
	ErrAlreadyFinal     = errors.New("booking is already cancelled or completed")
	ErrCodeExhausted    = errors.New("could not generate a unique booking code")
)

// NotAvailableError carries the availability engine's explanation for a
// rejected slot.
type NotAvailableError struct {
	Message string
}

func (e *NotAvailableError) Error() string { return e.Message }
