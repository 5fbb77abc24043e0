package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

const (
	CodeNotificationNotFound = "NTF001"
)
