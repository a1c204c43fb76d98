package booking

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("booking or referenced record not found")
	ErrZoneOverlap = errors.New("time window overlaps another booking on this zone")
	ErrNoCapacity  = errors.New("not enough free seats in this slot")
	ErrNoCredit    = errors.New("subscription has no remaining visits or has expired")
)
