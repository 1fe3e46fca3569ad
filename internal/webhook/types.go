package webhook

import (
	"time"

	"restock-srv/internal/dispatch"
)

type EnqueueInput struct {
	SubscriptionID string
	Event          string
	Data           any
}

// Payload is the JSON body posted to subscribers.
type Payload struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	CreatedAt time.Time `json:"created_at"`
	Data      any       `json:"data"`
}

type StatsOutput struct {
	SubscriptionID  string     `json:"subscription_id"`
	TotalCalls      int64      `json:"total_calls"`
	SuccessfulCalls int64      `json:"successful_calls"`
	FailedCalls     int64      `json:"failed_calls"`
	SuccessRate     float64    `json:"success_rate"`
	LastTriggered   *time.Time `json:"last_triggered,omitempty"`
}

type TestOutput struct {
	Result     dispatch.DeliveryResult `json:"result"`
	StatusCode int                     `json:"status_code,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

// TestData is the data of a webhook.test delivery.
type TestData struct {
	SubscriptionID string `json:"subscription_id"`
	Message        string `json:"message"`
}

// Header names set on every delivery.
const (
	HeaderEvent     = "X-Webhook-Event"
	HeaderTimestamp = "X-Webhook-Timestamp"
	HeaderDelivery  = "X-Webhook-Delivery"
	HeaderSignature = "X-Webhook-Signature"
)
