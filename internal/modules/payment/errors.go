package payment

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("booking not found")
	ErrNothingDue = errors.New("booking has no outstanding amount")
)
