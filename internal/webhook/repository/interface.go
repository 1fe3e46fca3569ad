package repository

import (
	"context"
	"errors"

	"restock-srv/internal/model"
)

var ErrNotFound = errors.New("webhook subscription not found")

// Repository reads subscriptions managed by the settings API and keeps their delivery counters.
//
//go:generate mockery --name Repository
type Repository interface {
	Detail(ctx context.Context, id string) (model.WebhookSubscription, error)
	ListActiveByUser(ctx context.Context, userID string) ([]model.WebhookSubscription, error)
	// RecordDelivery counts one terminal attempt and stamps last_triggered.
	RecordDelivery(ctx context.Context, opts RecordDeliveryOptions) error
}
