package subscription

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("subscription not found")
)
