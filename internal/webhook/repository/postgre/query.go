package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"restock-srv/internal/model"
)

const subscriptionColumns = `id, user_id, url, secret_encrypted, is_active, events, headers,
       max_retries, base_delay_ms, backoff_multiplier,
       filter_retailers, filter_categories, filter_min_price, filter_max_price, filter_keywords,
       total_calls, successful_calls, failed_calls, last_triggered_at, created_at, updated_at`

const (
	detailQuery = `SELECT ` + subscriptionColumns + ` FROM webhook_subscriptions WHERE id = $1`

	listActiveByUserQuery = `
SELECT ` + subscriptionColumns + `
FROM webhook_subscriptions
WHERE user_id = $1 AND is_active = TRUE
ORDER BY created_at ASC`

	recordDeliveryQuery = `
UPDATE webhook_subscriptions
SET total_calls = total_calls + 1,
    successful_calls = successful_calls + CASE WHEN $2 THEN 1 ELSE 0 END,
    failed_calls = failed_calls + CASE WHEN $2 THEN 0 ELSE 1 END,
    last_triggered_at = $3,
    updated_at = $3
WHERE id = $1`
)

type rowScanner interface {
	Scan(dest ...any) error
}

type subscriptionRow struct {
	ID               string
	UserID           string
	URL              string
	SecretEncrypted  null.String
	IsActive         bool
	Events           pq.StringArray
	Headers          null.JSON
	MaxRetries       null.Int
	BaseDelayMS      null.Int64
	BackoffMult      null.Float64
	FilterRetailers  pq.StringArray
	FilterCategories pq.StringArray
	FilterMinPrice   decimal.NullDecimal
	FilterMaxPrice   decimal.NullDecimal
	FilterKeywords   pq.StringArray
	TotalCalls       int64
	SuccessfulCalls  int64
	FailedCalls      int64
	LastTriggeredAt  null.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func scanRow(row rowScanner) (subscriptionRow, error) {
	var r subscriptionRow
	err := row.Scan(
		&r.ID, &r.UserID, &r.URL, &r.SecretEncrypted, &r.IsActive, &r.Events, &r.Headers,
		&r.MaxRetries, &r.BaseDelayMS, &r.BackoffMult,
		&r.FilterRetailers, &r.FilterCategories, &r.FilterMinPrice, &r.FilterMaxPrice, &r.FilterKeywords,
		&r.TotalCalls, &r.SuccessfulCalls, &r.FailedCalls, &r.LastTriggeredAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// toModel leaves RetryPolicy zero when any retry column is null so the queue default applies.
func (r subscriptionRow) toModel(secret string) (model.WebhookSubscription, error) {
	sub := model.WebhookSubscription{
		ID:       r.ID,
		UserID:   r.UserID,
		URL:      r.URL,
		Secret:   secret,
		IsActive: r.IsActive,
		Events:   []string(r.Events),
		Filters: model.WebhookFilters{
			Retailers:  []string(r.FilterRetailers),
			Categories: []string(r.FilterCategories),
			Keywords:   []string(r.FilterKeywords),
			MinPrice:   decimalPtr(r.FilterMinPrice),
			MaxPrice:   decimalPtr(r.FilterMaxPrice),
		},
		Stats: model.WebhookStats{
			TotalCalls:      r.TotalCalls,
			SuccessfulCalls: r.SuccessfulCalls,
			FailedCalls:     r.FailedCalls,
			LastTriggered:   r.LastTriggeredAt.Ptr(),
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if r.MaxRetries.Valid && r.BaseDelayMS.Valid && r.BackoffMult.Valid {
		sub.RetryPolicy = model.RetryPolicy{
			MaxRetries:        r.MaxRetries.Int,
			BaseDelay:         time.Duration(r.BaseDelayMS.Int64) * time.Millisecond,
			BackoffMultiplier: r.BackoffMult.Float64,
		}
	}

	if r.Headers.Valid && len(r.Headers.JSON) > 0 {
		if err := json.Unmarshal(r.Headers.JSON, &sub.Headers); err != nil {
			return model.WebhookSubscription{}, fmt.Errorf("decode headers: %w", err)
		}
	}
	return sub, nil
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
