package visit

import "errors"

var (
	ErrNotFound          = errors.New("booking not found")
	ErrAlreadyCheckedIn  = errors.New("visit already checked in")
	ErrNotCheckedIn      = errors.New("visit has no check-in yet")
	ErrAlreadyCheckedOut = errors.New("visit already checked out")
)
