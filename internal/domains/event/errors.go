package event

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotPending    = errors.New("event has already been decided")
	ErrNotOwner      = errors.New("event belongs to another organizer")
)

const (
	CodeEventNotFound = "EVT001"
	CodeNotPending    = "EVT002"
	CodeNotOwner      = "EVT003"
)
