package usecase

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"

	"restock-srv/internal/model"
	"restock-srv/internal/webhook"
)

func (uc *implUseCase) EnqueueForAlert(ctx context.Context, a model.Alert) ([]string, error) {
	subs, err := uc.repo.ListActiveByUser(ctx, a.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.webhook.usecase.EnqueueForAlert.ListActiveByUser: %v", err)
		return nil, err
	}

	event := a.Type.EventName()
	ids := []string{}
	for _, sub := range subs {
		if !sub.IsActive || !sub.Subscribes(event) || !matchFilters(sub.Filters, a) {
			continue
		}
		id, err := uc.Enqueue(ctx, webhook.EnqueueInput{SubscriptionID: sub.ID, Event: event, Data: a})
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (uc *implUseCase) Enqueue(ctx context.Context, input webhook.EnqueueInput) (string, error) {
	now := uc.clock()
	id := uuid.NewString()
	body, err := marshalPayload(webhook.Payload{
		ID:        id,
		Event:     input.Event,
		CreatedAt: now.UTC(),
		Data:      input.Data,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.webhook.usecase.Enqueue.Marshal: %v", err)
		return "", err
	}

	uc.mu.Lock()
	if uc.closed {
		uc.mu.Unlock()
		return "", webhook.ErrQueueClosed
	}
	uc.items = append(uc.items, queueItem{
		id:             id,
		subscriptionID: input.SubscriptionID,
		event:          input.Event,
		body:           body,
		readyAt:        now,
	})
	uc.mu.Unlock()

	uc.notify()
	return id, nil
}

func marshalPayload(p webhook.Payload) ([]byte, error) {
	return json.Marshal(p)
}

func (uc *implUseCase) Len() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.items)
}

func (uc *implUseCase) notify() {
	select {
	case uc.signal <- struct{}{}:
	default:
	}
}

// pop removes the oldest item that is ready. When nothing is ready it returns how long until
// the earliest retry becomes ready, or zero for an empty queue.
func (uc *implUseCase) pop() (queueItem, time.Duration, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.clock()
	var wait time.Duration
	for i, it := range uc.items {
		if !it.readyAt.After(now) {
			uc.items = append(uc.items[:i], uc.items[i+1:]...)
			return it, 0, true
		}
		if d := it.readyAt.Sub(now); wait == 0 || d < wait {
			wait = d
		}
	}
	return queueItem{}, wait, false
}

// requeue schedules a retry. Retries go to the back, so newer ready items may overtake them.
// Once the queue is shut down the item is dropped.
func (uc *implUseCase) requeue(it queueItem) {
	uc.mu.Lock()
	if uc.closed {
		uc.mu.Unlock()
		uc.l.Warnf(context.Background(), "internal.webhook.usecase.requeue: queue closed, dropping delivery %s", it.id)
		return
	}
	uc.items = append(uc.items, it)
	uc.mu.Unlock()
	uc.notify()
}

// backoff is base * multiplier^attempt, where attempt is the number of retries already made.
func backoff(p model.RetryPolicy, attempt int) time.Duration {
	return time.Duration(float64(p.BaseDelay) * math.Pow(p.BackoffMultiplier, float64(attempt)))
}

func (uc *implUseCase) policyFor(sub model.WebhookSubscription) model.RetryPolicy {
	p := sub.RetryPolicy
	if p.BaseDelay <= 0 || p.BackoffMultiplier < 1 || p.MaxRetries < 0 {
		return uc.opts.DefaultPolicy
	}
	return p
}
