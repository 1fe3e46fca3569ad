package scheduler

import (
	"context"
)

func (s *implScheduler) Start() error {
	s.cron.Start()
	s.l.Infof(context.Background(), "internal.scheduler.Start: due sweep scheduled %q", s.opts.Spec)
	return nil
}

func (s *implScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *implScheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.SweepTimeout)
	defer cancel()

	// The use case logs the sweep summary.
	if _, err := s.uc.ProcessDueAlerts(ctx); err != nil {
		s.l.Errorf(ctx, "internal.scheduler.sweep.ProcessDueAlerts: %v", err)
	}
}
