package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"restock-srv/internal/model"
	"restock-srv/internal/webhook"
	"restock-srv/internal/webhook/repository"
	"restock-srv/pkg/signature"
)

func (uc *implUseCase) Start(ctx context.Context) {
	uc.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		uc.mu.Lock()
		uc.cancel = cancel
		uc.mu.Unlock()
		go uc.run(ctx)
	})
}

// Shutdown stops the consumer after the in-flight attempt. Queued items are dropped, and so is
// a retry the in-flight attempt would have scheduled.
func (uc *implUseCase) Shutdown(ctx context.Context) error {
	uc.mu.Lock()
	uc.closed = true
	dropped := len(uc.items)
	uc.items = nil
	cancel := uc.cancel
	uc.mu.Unlock()

	if dropped > 0 {
		uc.l.Warnf(ctx, "internal.webhook.usecase.Shutdown: dropping %d queued deliveries", dropped)
	}
	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-uc.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (uc *implUseCase) run(ctx context.Context) {
	defer close(uc.done)

	ticker := time.NewTicker(uc.opts.PollInterval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return
		}
		taken, wait := uc.processNext(ctx)
		if taken {
			continue
		}

		var timer *time.Timer
		var retry <-chan time.Time
		if wait > 0 && wait < uc.opts.PollInterval {
			timer = time.NewTimer(wait)
			retry = timer.C
		}

		select {
		case <-ctx.Done():
			return
		case <-uc.signal:
		case <-ticker.C:
		case <-retry:
		}
		if timer != nil {
			timer.Stop()
		}
	}
}

// processNext delivers the oldest ready item once. When nothing is ready it returns the time
// until the earliest retry. Cancelling ctx stops the wait for a send slot but never an attempt
// already on the wire; each attempt is bounded by the send timeout only.
func (uc *implUseCase) processNext(ctx context.Context) (bool, time.Duration) {
	it, wait, ok := uc.pop()
	if !ok {
		return false, wait
	}
	if err := uc.limiter.Wait(ctx); err != nil {
		uc.requeue(it)
		return false, 0
	}
	uc.deliver(context.WithoutCancel(ctx), it)
	return true, 0
}

func (uc *implUseCase) deliver(ctx context.Context, it queueItem) {
	sub, err := uc.repo.Detail(ctx, it.subscriptionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			uc.l.Warnf(ctx, "internal.webhook.usecase.deliver: subscription_id=%s removed, dropping delivery %s", it.subscriptionID, it.id)
			return
		}
		uc.l.Errorf(ctx, "internal.webhook.usecase.deliver.Detail: subscription_id=%s: %v", it.subscriptionID, err)
		uc.retryOrFail(ctx, uc.opts.DefaultPolicy, it, err)
		return
	}
	if !sub.IsActive {
		uc.l.Infof(ctx, "internal.webhook.usecase.deliver: subscription_id=%s inactive, dropping delivery %s", sub.ID, it.id)
		return
	}
	// A rejected endpoint fails terminally, with no retry.
	if err := uc.ValidateURL(sub.URL); err != nil {
		uc.l.Warnf(ctx, "internal.webhook.usecase.deliver: subscription_id=%s delivery_id=%s: %v", sub.ID, it.id, err)
		uc.record(ctx, sub.ID, false)
		return
	}

	if _, err := uc.post(ctx, sub, it); err != nil {
		uc.l.Warnf(ctx, "internal.webhook.usecase.deliver: subscription_id=%s delivery_id=%s attempt=%d: %v", sub.ID, it.id, it.attempt+1, err)
		uc.retryOrFail(ctx, uc.policyFor(sub), it, err)
		return
	}
	uc.record(ctx, sub.ID, true)
}

func (uc *implUseCase) retryOrFail(ctx context.Context, p model.RetryPolicy, it queueItem, cause error) {
	if it.attempt < p.MaxRetries {
		it.readyAt = uc.clock().Add(backoff(p, it.attempt))
		it.attempt++
		uc.requeue(it)
		return
	}
	uc.l.Errorf(ctx, "internal.webhook.usecase.deliver: subscription_id=%s delivery_id=%s abandoned after %d attempts: %v", it.subscriptionID, it.id, it.attempt+1, cause)
	uc.record(ctx, it.subscriptionID, false)
}

func (uc *implUseCase) record(ctx context.Context, subscriptionID string, success bool) {
	err := uc.repo.RecordDelivery(ctx, repository.RecordDeliveryOptions{
		SubscriptionID: subscriptionID,
		Success:        success,
		At:             uc.clock(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.webhook.usecase.record.RecordDelivery: subscription_id=%s: %v", subscriptionID, err)
	}
}

// post sends one attempt. Any 2xx is success.
func (uc *implUseCase) post(ctx context.Context, sub model.WebhookSubscription, it queueItem) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL, bytes.NewReader(it.body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	for k, v := range sub.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(webhook.HeaderEvent, it.event)
	req.Header.Set(webhook.HeaderTimestamp, strconv.FormatInt(uc.clock().Unix(), 10))
	req.Header.Set(webhook.HeaderDelivery, it.id)
	if sub.Secret != "" {
		req.Header.Set(webhook.HeaderSignature, signature.Sign(sub.Secret, it.body))
	}

	resp, err := uc.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
