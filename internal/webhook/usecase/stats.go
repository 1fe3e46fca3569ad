package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"restock-srv/internal/dispatch"
	"restock-srv/internal/model"
	"restock-srv/internal/webhook"
	"restock-srv/internal/webhook/repository"
)

func (uc *implUseCase) Stats(ctx context.Context, subscriptionID string) (webhook.StatsOutput, error) {
	sub, err := uc.repo.Detail(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return webhook.StatsOutput{}, webhook.ErrSubscriptionNotFound
		}
		uc.l.Errorf(ctx, "internal.webhook.usecase.Stats.Detail: %v", err)
		return webhook.StatsOutput{}, err
	}

	return webhook.StatsOutput{
		SubscriptionID:  sub.ID,
		TotalCalls:      sub.Stats.TotalCalls,
		SuccessfulCalls: sub.Stats.SuccessfulCalls,
		FailedCalls:     sub.Stats.FailedCalls,
		SuccessRate:     sub.Stats.SuccessRate(),
		LastTriggered:   sub.Stats.LastTriggered,
	}, nil
}

func (uc *implUseCase) Test(ctx context.Context, subscriptionID string) (webhook.TestOutput, error) {
	sub, err := uc.repo.Detail(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return webhook.TestOutput{}, webhook.ErrSubscriptionNotFound
		}
		uc.l.Errorf(ctx, "internal.webhook.usecase.Test.Detail: %v", err)
		return webhook.TestOutput{}, err
	}

	id := uuid.NewString()
	body, err := marshalPayload(webhook.Payload{
		ID:        id,
		Event:     model.EventWebhookTest,
		CreatedAt: uc.clock().UTC(),
		Data: webhook.TestData{
			SubscriptionID: sub.ID,
			Message:        "This is a test delivery.",
		},
	})
	if err != nil {
		return webhook.TestOutput{}, err
	}

	it := queueItem{id: id, subscriptionID: sub.ID, event: model.EventWebhookTest, body: body}
	var status int
	sendErr := uc.ValidateURL(sub.URL)
	if sendErr == nil {
		status, sendErr = uc.post(ctx, sub, it)
	}
	uc.record(ctx, sub.ID, sendErr == nil)

	out := webhook.TestOutput{
		StatusCode: status,
		Result: dispatch.DeliveryResult{
			SuccessfulChannels: []string{},
			FailedChannels:     []string{},
			DeliveryIDs:        []string{id},
		},
	}
	if sendErr != nil {
		out.Error = sendErr.Error()
		out.Result.Status = dispatch.DeliveryStatusFailed
		out.Result.FailedChannels = []string{model.ChannelWebhook}
		out.Result.Errors = map[string]string{model.ChannelWebhook: sendErr.Error()}
		return out, nil
	}
	out.Result.Status = dispatch.DeliveryStatusSent
	out.Result.SuccessfulChannels = []string{model.ChannelWebhook}
	return out, nil
}

func (uc *implUseCase) ValidateURL(raw string) error {
	return webhook.ValidateURL(raw, uc.opts.Production)
}
