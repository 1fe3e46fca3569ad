package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	alertRepo "restock-srv/internal/alert/repository"
	"restock-srv/internal/dispatch"
	"restock-srv/internal/model"
)

type outcome struct {
	name string
	res  dispatch.SendResult
	err  error
}

func (uc *implUseCase) Dispatch(ctx context.Context, a model.Alert, u model.User) (dispatch.DeliveryResult, error) {
	if a.Status != model.AlertStatusPending {
		return dispatch.DeliveryResult{}, model.ErrInvalidStatusTransition
	}

	var enabled []dispatch.Channel
	for _, ch := range uc.channels {
		if ch.Enabled(u) {
			enabled = append(enabled, ch)
		}
	}

	outcomes := make([]outcome, len(enabled))
	var wg sync.WaitGroup
	for i, ch := range enabled {
		wg.Add(1)
		go func(i int, ch dispatch.Channel) {
			defer wg.Done()
			outcomes[i] = uc.send(ctx, ch, a, u)
		}(i, ch)
	}
	wg.Wait()

	result := dispatch.DeliveryResult{
		AlertID:            a.ID,
		SuccessfulChannels: []string{},
		FailedChannels:     []string{},
		DeliveryIDs:        []string{},
	}
	var reasons []string
	for _, o := range outcomes {
		switch {
		case o.err == nil:
			result.SuccessfulChannels = append(result.SuccessfulChannels, o.name)
			result.DeliveryIDs = append(result.DeliveryIDs, o.res.DeliveryIDs...)
		case errors.Is(o.err, dispatch.ErrSkipped):
			uc.l.Debugf(ctx, "internal.dispatch.usecase.Dispatch: alert_id=%s channel=%s skipped", a.ID, o.name)
		default:
			uc.l.Errorf(ctx, "internal.dispatch.usecase.Dispatch: alert_id=%s channel=%s: %v", a.ID, o.name, o.err)
			result.FailedChannels = append(result.FailedChannels, o.name)
			reasons = append(reasons, fmt.Sprintf("%s: %v", o.name, o.err))
			if result.Errors == nil {
				result.Errors = make(map[string]string)
			}
			result.Errors[o.name] = o.err.Error()
		}
	}

	now := uc.clock()
	var err error
	if len(result.SuccessfulChannels) > 0 {
		result.Status = dispatch.DeliveryStatusSent
		err = a.MarkSent(result.SuccessfulChannels, now)
	} else {
		result.Status = dispatch.DeliveryStatusFailed
		reason := dispatch.ErrNoChannels.Error()
		if len(reasons) > 0 {
			reason = strings.Join(reasons, "; ")
		}
		err = a.MarkFailed(reason, result.FailedChannels, now)
	}
	if err != nil {
		return result, err
	}

	if _, err := uc.repo.Update(ctx, alertRepo.UpdateOptions{Alert: a}); err != nil {
		uc.l.Errorf(ctx, "internal.dispatch.usecase.Dispatch.Update: alert_id=%s: %v", a.ID, err)
		return result, err
	}
	return result, nil
}

// send runs one channel under its own timeout. A panicking channel counts as failed.
func (uc *implUseCase) send(ctx context.Context, ch dispatch.Channel, a model.Alert, u model.User) (o outcome) {
	o.name = ch.Name()
	defer func() {
		if r := recover(); r != nil {
			o.err = fmt.Errorf("panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	o.res, o.err = ch.Send(ctx, a, u)
	return o
}
