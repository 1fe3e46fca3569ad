package dispatch

import (
	"context"

	"restock-srv/internal/model"
)

// Dispatcher fans an alert out to the user's channels and settles its status.
//
//go:generate mockery --name Dispatcher
type Dispatcher interface {
	Dispatch(ctx context.Context, a model.Alert, u model.User) (DeliveryResult, error)
}

// Channel is one delivery transport.
//
//go:generate mockery --name Channel
type Channel interface {
	Name() string
	// Enabled reports whether the user turned this channel on and has somewhere to deliver.
	Enabled(u model.User) bool
	// Send returns ErrSkipped when there was nothing to deliver.
	Send(ctx context.Context, a model.Alert, u model.User) (SendResult, error)
}

// Configurer is implemented by channels whose backend is optional. An unconfigured channel
// fails every send with ErrChannelNotConfigured.
type Configurer interface {
	Configured() bool
}
