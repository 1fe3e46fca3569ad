package channel

import (
	"context"

	"restock-srv/internal/model"
)

// EmailSender is implemented by the mail delivery service. It returns the provider message id.
//
//go:generate mockery --name EmailSender
type EmailSender interface {
	SendAlertEmail(ctx context.Context, to string, a model.Alert) (string, error)
}

// SMSSender is implemented by the SMS delivery service. It returns the provider message id.
//
//go:generate mockery --name SMSSender
type SMSSender interface {
	SendAlertSMS(ctx context.Context, to string, a model.Alert) (string, error)
}

// WebhookEnqueuer hands an alert to the webhook queue and returns the queued delivery ids.
type WebhookEnqueuer interface {
	EnqueueForAlert(ctx context.Context, a model.Alert) ([]string, error)
}
