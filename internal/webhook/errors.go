package webhook

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("webhook subscription not found")
	ErrInvalidURL           = errors.New("invalid webhook url")
	ErrQueueClosed          = errors.New("webhook queue is shut down")
)
