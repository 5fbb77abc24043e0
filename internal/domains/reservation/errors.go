package reservation

import "errors"

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrDuplicateActive     = errors.New("an active reservation for this book already exists")
	ErrNotOwner            = errors.New("reservation belongs to another user")
	ErrNotActive           = errors.New("reservation is no longer active")
)

// Error codes surfaced in the response envelope.
const (
	CodeReservationNotFound = "RSV001"
	CodeDuplicateActive     = "RSV002"
	CodeNotOwner            = "RSV003"
	CodeNotActive           = "RSV004"
)
