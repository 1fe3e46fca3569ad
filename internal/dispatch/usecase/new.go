package usecase

import (
	"context"
	"time"

	alertRepo "restock-srv/internal/alert/repository"
	"restock-srv/internal/dispatch"
	"restock-srv/pkg/log"
)

const defaultChannelTimeout = 10 * time.Second

type Options struct {
	ChannelTimeout time.Duration
}

type implUseCase struct {
	l        log.Logger
	repo     alertRepo.Repository
	channels []dispatch.Channel
	timeout  time.Duration
	clock    func() time.Time
}

// New builds a Dispatcher over channels. Channel order only fixes the order of names in results.
func New(l log.Logger, repo alertRepo.Repository, opts Options, channels ...dispatch.Channel) dispatch.Dispatcher {
	if opts.ChannelTimeout <= 0 {
		opts.ChannelTimeout = defaultChannelTimeout
	}
	for _, ch := range channels {
		if c, ok := ch.(dispatch.Configurer); ok && !c.Configured() {
			l.Warnf(context.Background(), "internal.dispatch.usecase.New: channel %s has no backend, sends to users who enabled it will fail", ch.Name())
		}
	}
	return &implUseCase{
		l:        l,
		repo:     repo,
		channels: channels,
		timeout:  opts.ChannelTimeout,
		clock:    time.Now,
	}
}
