package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventWebhookTest is fired by the test endpoint and bypasses event and filter matching.
const EventWebhookTest = "webhook.test"

type RetryPolicy struct {
	MaxRetries        int           `json:"max_retries"`
	BaseDelay         time.Duration `json:"base_delay"`
	BackoffMultiplier float64       `json:"backoff_multiplier"`
}

// WebhookFilters are AND-combined. An empty field does not constrain.
type WebhookFilters struct {
	Retailers  []string         `json:"retailers,omitempty"`
	Categories []string         `json:"categories,omitempty"`
	MinPrice   *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice   *decimal.Decimal `json:"max_price,omitempty"`
	Keywords   []string         `json:"keywords,omitempty"`
}

type WebhookStats struct {
	TotalCalls      int64      `json:"total_calls"`
	SuccessfulCalls int64      `json:"successful_calls"`
	FailedCalls     int64      `json:"failed_calls"`
	LastTriggered   *time.Time `json:"last_triggered,omitempty"`
}

// SuccessRate is the share of successful terminal attempts in percent.
func (s WebhookStats) SuccessRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.SuccessfulCalls) / float64(s.TotalCalls) * 100
}

type WebhookSubscription struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	URL         string            `json:"url"`
	Secret      string            `json:"-"`
	IsActive    bool              `json:"is_active"`
	Events      []string          `json:"events"`
	Headers     map[string]string `json:"headers,omitempty"`
	RetryPolicy RetryPolicy       `json:"retry_policy"`
	Filters     WebhookFilters    `json:"filters"`
	Stats       WebhookStats      `json:"stats"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Subscribes reports whether the subscription listens to event.
func (s WebhookSubscription) Subscribes(event string) bool {
	for _, e := range s.Events {
		if e == event || e == "*" {
			return true
		}
	}
	return false
}
