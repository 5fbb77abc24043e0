package user

import "errors"

// Sentinel errors returned by the user domain. Handlers map these to
// HTTP status codes and response envelope error codes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUserSuspended      = errors.New("user account is suspended")
	ErrSamePassword       = errors.New("new password must differ from current password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid status")
)

// Error codes surfaced in the response envelope.
const (
	CodeUserNotFound       = "USR001"
	CodeEmailExists        = "USR002"
	CodeInvalidCredentials = "USR003"
	CodeUserInactive       = "USR004"
	CodeUserSuspended      = "USR005"
)
