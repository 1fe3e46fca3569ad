package alert

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid availability event")
	ErrUserNotFound    = errors.New("user not found")
	ErrLockUnavailable = errors.New("event for the same product is already being processed")
)
