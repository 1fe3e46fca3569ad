package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"restock-srv/internal/alert"
	"restock-srv/pkg/log"
)

const defaultSweepTimeout = 2 * time.Minute

// Scheduler runs the due-alert sweep on a cron spec.
type Scheduler interface {
	Start() error
	// Stop waits for a running sweep to finish or ctx to expire.
	Stop(ctx context.Context) error
}

type Options struct {
	// Spec is a robfig/cron spec, e.g. "@every 1m".
	Spec         string
	SweepTimeout time.Duration
}

type implScheduler struct {
	l    log.Logger
	uc   alert.UseCase
	opts Options
	cron *cron.Cron
}

func New(l log.Logger, uc alert.UseCase, opts Options) (Scheduler, error) {
	if opts.SweepTimeout <= 0 {
		opts.SweepTimeout = defaultSweepTimeout
	}
	cl := cronLogger{l: l}
	s := &implScheduler{
		l:    l,
		uc:   uc,
		opts: opts,
		cron: cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
	}
	if _, err := s.cron.AddFunc(opts.Spec, s.sweep); err != nil {
		return nil, fmt.Errorf("scheduler: invalid spec %q: %w", opts.Spec, err)
	}
	return s, nil
}

// cronLogger routes cron's own messages into the service logger.
type cronLogger struct {
	l log.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debugf(context.Background(), "internal.scheduler.cron: %s %v", msg, keysAndValues)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Errorf(context.Background(), "internal.scheduler.cron: %s %v: %v", msg, keysAndValues, err)
}
