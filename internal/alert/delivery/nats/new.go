package nats

import (
	"context"
	"time"

	natsio "github.com/nats-io/nats.go"

	"restock-srv/internal/alert"
	"restock-srv/pkg/log"
)

const defaultHandleTimeout = 30 * time.Second

// Consumer feeds availability events published on NATS into the coordinator.
type Consumer interface {
	Start() error
	// Shutdown drains the subscription so in-flight messages finish.
	Shutdown(ctx context.Context) error
}

type Options struct {
	Subject       string
	Queue         string
	HandleTimeout time.Duration
}

type implConsumer struct {
	l    log.Logger
	conn *natsio.Conn
	uc   alert.UseCase
	opts Options
	sub  *natsio.Subscription
}

func New(l log.Logger, conn *natsio.Conn, uc alert.UseCase, opts Options) Consumer {
	if opts.HandleTimeout <= 0 {
		opts.HandleTimeout = defaultHandleTimeout
	}
	return &implConsumer{
		l:    l,
		conn: conn,
		uc:   uc,
		opts: opts,
	}
}
