package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"restock-srv/internal/alert"
	"restock-srv/internal/alert/repository"
	"restock-srv/internal/model"
	userRepo "restock-srv/internal/user/repository"
)

type dueJob struct {
	alert  model.Alert
	user   model.User
	weight int
}

type sweepOutcome int

const (
	outcomeSkipped sweepOutcome = iota
	outcomeDispatched
	outcomeRescheduled
	outcomeFailed
)

func (uc *implUseCase) ProcessDueAlerts(ctx context.Context) (alert.SweepOutput, error) {
	now := uc.clock()
	due, err := uc.repo.ListDue(ctx, repository.ListDueOptions{Before: now, Limit: uc.opts.SweepBatch})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.ProcessDueAlerts.repo.ListDue: %v", err)
		return alert.SweepOutput{}, err
	}

	out := alert.SweepOutput{Due: len(due)}
	users := make(map[string]model.User)
	jobs := make([]dueJob, 0, len(due))
	for _, a := range due {
		u, ok := users[a.UserID]
		if !ok {
			u, err = uc.userRepo.Detail(ctx, a.UserID)
			if err != nil {
				if errors.Is(err, userRepo.ErrNotFound) {
					uc.failOrphan(ctx, a, now)
					out.Failed++
					continue
				}
				uc.l.Errorf(ctx, "internal.alert.usecase.ProcessDueAlerts.userRepo.Detail: user_id=%s: %v", a.UserID, err)
				out.Skipped++
				continue
			}
			users[a.UserID] = u
		}
		jobs = append(jobs, dueJob{alert: a, user: u, weight: uc.plan.WeightFor(uc.plan.ResolveTier(u))})
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].weight != jobs[j].weight {
			return jobs[i].weight > jobs[j].weight
		}
		return scheduledBefore(jobs[i].alert, jobs[j].alert)
	})

	for _, j := range jobs {
		if ctx.Err() != nil {
			out.Skipped++
			continue
		}
		switch uc.processDue(ctx, j.alert, j.user) {
		case outcomeDispatched:
			out.Dispatched++
		case outcomeRescheduled:
			out.Rescheduled++
		case outcomeFailed:
			out.Failed++
		default:
			out.Skipped++
		}
	}

	if out.Due > 0 {
		uc.l.Infof(ctx, "internal.alert.usecase.ProcessDueAlerts: due=%d dispatched=%d rescheduled=%d skipped=%d failed=%d",
			out.Due, out.Dispatched, out.Rescheduled, out.Skipped, out.Failed)
	}
	return out, nil
}

// processDue re-reads the alert under its key lock so a concurrent sweep or submit cannot
// deliver it twice.
func (uc *implUseCase) processDue(ctx context.Context, a model.Alert, u model.User) sweepOutcome {
	unlock, err := uc.locker.Lock(ctx, a.Key().String())
	if err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.processDue.Lock: alert_id=%s: %v", a.ID, err)
		return outcomeSkipped
	}
	defer unlock()

	now := uc.clock()
	current, err := uc.repo.Detail(ctx, a.ID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.processDue.repo.Detail: alert_id=%s: %v", a.ID, err)
		return outcomeSkipped
	}
	if current.Status != model.AlertStatusPending || current.ScheduledFor == nil || current.ScheduledFor.After(now) {
		return outcomeSkipped
	}

	if next, quiet := uc.quietUntil(ctx, u, now); quiet {
		if err := current.Schedule(next, now); err != nil {
			return outcomeSkipped
		}
		if _, err := uc.repo.Update(ctx, repository.UpdateOptions{Alert: current}); err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.processDue.repo.Update: alert_id=%s: %v", a.ID, err)
			return outcomeFailed
		}
		return outcomeRescheduled
	}

	current.ScheduledFor = nil
	if _, err := uc.dispatcher.Dispatch(ctx, current, u); err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.processDue.dispatcher.Dispatch: alert_id=%s: %v", a.ID, err)
		return outcomeFailed
	}
	return outcomeDispatched
}

func (uc *implUseCase) failOrphan(ctx context.Context, a model.Alert, now time.Time) {
	if err := a.MarkFailed(alert.ErrUserNotFound.Error(), []string{}, now); err != nil {
		return
	}
	if _, err := uc.repo.Update(ctx, repository.UpdateOptions{Alert: a}); err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.failOrphan.repo.Update: alert_id=%s: %v", a.ID, err)
	}
}

func scheduledBefore(a, b model.Alert) bool {
	switch {
	case a.ScheduledFor == nil:
		return false
	case b.ScheduledFor == nil:
		return true
	default:
		return a.ScheduledFor.Before(*b.ScheduledFor)
	}
}
