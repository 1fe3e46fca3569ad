package dispatch

import "errors"

var (
	// ErrSkipped means the channel had nothing to deliver. It counts as neither success nor failure.
	ErrSkipped              = errors.New("channel skipped")
	ErrChannelNotConfigured = errors.New("channel not configured")
	ErrNoChannels           = errors.New("no delivery channels enabled")
)
