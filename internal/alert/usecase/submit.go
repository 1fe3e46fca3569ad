package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"restock-srv/internal/alert"
	"restock-srv/internal/alert/repository"
	"restock-srv/internal/model"
	"restock-srv/internal/quiethours"
	userRepo "restock-srv/internal/user/repository"
)

func (uc *implUseCase) SubmitAvailabilityEvent(ctx context.Context, ip alert.SubmitInput) (alert.SubmitOutput, error) {
	if err := ip.Validate(); err != nil {
		return alert.SubmitOutput{}, err
	}

	key := ip.Key()
	unlock, err := uc.locker.Lock(ctx, key.String())
	if err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.SubmitAvailabilityEvent.Lock: key=%s: %v", key, err)
		return alert.SubmitOutput{}, err
	}
	defer unlock()

	u, err := uc.userRepo.Detail(ctx, ip.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return alert.SubmitOutput{}, alert.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.SubmitAvailabilityEvent.userRepo.Detail: %v", err)
		return alert.SubmitOutput{}, err
	}

	now := uc.clock()

	existing, err := uc.repo.FindRecent(ctx, repository.FindRecentOptions{
		Key:   key,
		Since: now.Add(-uc.opts.DedupWindow),
	})
	switch {
	case err == nil:
		uc.l.Infof(ctx, "internal.alert.usecase.SubmitAvailabilityEvent: key=%s deduplicated against alert %s", key, existing.ID)
		return alert.SubmitOutput{Status: alert.StatusDeduplicated, AlertID: existing.ID}, nil
	case !errors.Is(err, repository.ErrNotFound):
		uc.l.Errorf(ctx, "internal.alert.usecase.SubmitAvailabilityEvent.repo.FindRecent: %v", err)
		return alert.SubmitOutput{}, err
	}

	count, err := uc.repo.CountByUserSince(ctx, ip.UserID, now.Add(-uc.opts.RateLimitWindow))
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.SubmitAvailabilityEvent.repo.CountByUserSince: %v", err)
		return alert.SubmitOutput{}, err
	}
	if count >= uc.opts.RateLimit {
		uc.l.Warnf(ctx, "internal.alert.usecase.SubmitAvailabilityEvent: user_id=%s rate limited (%d alerts in %s)", ip.UserID, count, uc.opts.RateLimitWindow)
		return alert.SubmitOutput{Status: alert.StatusRateLimited}, nil
	}

	tier := uc.plan.ResolveTier(u)
	a := model.Alert{
		ID:               uuid.NewString(),
		UserID:           ip.UserID,
		ProductID:        ip.ProductID,
		RetailerID:       ip.RetailerID,
		Type:             ip.Type,
		Priority:         uc.plan.BoostPriority(tier, ip.Type.BasePriority()),
		Payload:          ip.Payload,
		Status:           model.AlertStatusPending,
		DeliveryChannels: []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if next, quiet := uc.quietUntil(ctx, u, now); quiet {
		if err := a.Schedule(next, now); err != nil {
			return alert.SubmitOutput{}, err
		}
		created, err := uc.repo.Create(ctx, repository.CreateOptions{Alert: a})
		if err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.SubmitAvailabilityEvent.repo.Create: %v", err)
			return alert.SubmitOutput{}, err
		}
		return alert.SubmitOutput{Status: alert.StatusScheduled, AlertID: created.ID, ScheduledFor: created.ScheduledFor}, nil
	}

	created, err := uc.repo.Create(ctx, repository.CreateOptions{Alert: a})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.SubmitAvailabilityEvent.repo.Create: %v", err)
		return alert.SubmitOutput{}, err
	}

	res, err := uc.dispatcher.Dispatch(ctx, created, u)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.SubmitAvailabilityEvent.dispatcher.Dispatch: alert_id=%s: %v", created.ID, err)
		return alert.SubmitOutput{Status: alert.StatusAccepted, AlertID: created.ID}, err
	}
	return alert.SubmitOutput{Status: alert.StatusAccepted, AlertID: created.ID, Delivery: &res}, nil
}

// quietUntil reports whether delivery must wait and until when. Malformed quiet hours deliver
// immediately and are logged.
func (uc *implUseCase) quietUntil(ctx context.Context, u model.User, now time.Time) (time.Time, bool) {
	res := uc.quiet.IsQuietNow(u.QuietHours, now)
	switch res.Reason {
	case quiethours.ReasonInvalidTimezone, quiethours.ReasonInvalidTime:
		uc.l.Warnf(ctx, "internal.alert.usecase.quietUntil: user_id=%s: %s", u.ID, res.Reason)
	}
	if !res.IsQuiet || res.NextActiveAt == nil {
		return time.Time{}, false
	}
	return *res.NextActiveAt, true
}
