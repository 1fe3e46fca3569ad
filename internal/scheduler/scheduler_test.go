package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restock-srv/internal/alert"
	"restock-srv/pkg/log"
)

type fakeUseCase struct {
	calls atomic.Int32
	err   error
}

func (f *fakeUseCase) SubmitAvailabilityEvent(ctx context.Context, ip alert.SubmitInput) (alert.SubmitOutput, error) {
	return alert.SubmitOutput{}, nil
}

func (f *fakeUseCase) ProcessDueAlerts(ctx context.Context) (alert.SweepOutput, error) {
	f.calls.Add(1)
	return alert.SweepOutput{Due: 1, Dispatched: 1}, f.err
}

func TestNewRejectsBadSpec(t *testing.T) {
	_, err := New(log.NewNop(), &fakeUseCase{}, Options{Spec: "every minute please"})
	assert.Error(t, err)
}

// countingLogger counts info and error lines and discards everything.
type countingLogger struct {
	log.Logger
	infos atomic.Int32
	errs  atomic.Int32
}

func (c *countingLogger) Infof(ctx context.Context, template string, args ...any) {
	c.infos.Add(1)
}

func (c *countingLogger) Errorf(ctx context.Context, template string, args ...any) {
	c.errs.Add(1)
}

func TestSweepCallsUseCase(t *testing.T) {
	uc := &fakeUseCase{}
	l := &countingLogger{Logger: log.NewNop()}
	s, err := New(l, uc, Options{Spec: "@every 1h"})
	require.NoError(t, err)

	s.(*implScheduler).sweep()
	assert.Zero(t, l.infos.Load(), "summary is logged once, by the use case")

	uc.err = errors.New("db down")
	s.(*implScheduler).sweep()

	assert.Equal(t, int32(2), uc.calls.Load())
	assert.Equal(t, int32(1), l.errs.Load())
}

func TestStartRunsOnSchedule(t *testing.T) {
	uc := &fakeUseCase{}
	s, err := New(log.NewNop(), uc, Options{Spec: "@every 1s"})
	require.NoError(t, err)
	require.NoError(t, s.Start())

	assert.Eventually(t, func() bool { return uc.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
