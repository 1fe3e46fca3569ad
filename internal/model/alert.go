package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertType is the availability condition an alert reports.
type AlertType string

const (
	AlertTypeRestock   AlertType = "restock"
	AlertTypePriceDrop AlertType = "price_drop"
	AlertTypeLowStock  AlertType = "low_stock"
	AlertTypePreOrder  AlertType = "pre_order"
)

func (t AlertType) IsValid() bool {
	switch t {
	case AlertTypeRestock, AlertTypePriceDrop, AlertTypeLowStock, AlertTypePreOrder:
		return true
	default:
		return false
	}
}

func (t AlertType) String() string {
	return string(t)
}

// EventName is the webhook event an alert of this type fires, e.g. "alert.restock".
func (t AlertType) EventName() string {
	return "alert." + string(t)
}

// BasePriority is the priority before any plan boost.
func (t AlertType) BasePriority() Priority {
	switch t {
	case AlertTypeRestock:
		return PriorityHigh
	case AlertTypePriceDrop, AlertTypePreOrder:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Priority is ordered low < medium < high < urgent.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityScale = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Rank returns the position on the scale, or -1 for unknown values.
func (p Priority) Rank() int {
	for i, v := range priorityScale {
		if v == p {
			return i
		}
	}
	return -1
}

func (p Priority) IsValid() bool {
	return p.Rank() >= 0
}

// PriorityFromRank clamps rank into the scale.
func PriorityFromRank(rank int) Priority {
	if rank < 0 {
		rank = 0
	}
	if rank >= len(priorityScale) {
		rank = len(priorityScale) - 1
	}
	return priorityScale[rank]
}

type AlertStatus string

const (
	AlertStatusPending AlertStatus = "pending"
	AlertStatusSent    AlertStatus = "sent"
	AlertStatusFailed  AlertStatus = "failed"
)

func (s AlertStatus) IsTerminal() bool {
	return s == AlertStatusSent || s == AlertStatusFailed
}

// AlertPayload is what the user is told about the product.
type AlertPayload struct {
	ProductName   string           `json:"product_name"`
	RetailerName  string           `json:"retailer_name"`
	Category      string           `json:"category,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	PreviousPrice *decimal.Decimal `json:"previous_price,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	ProductURL    string           `json:"product_url,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	Availability  string           `json:"availability,omitempty"`
}

type Alert struct {
	ID               string       `json:"id"`
	UserID           string       `json:"user_id"`
	ProductID        string       `json:"product_id"`
	RetailerID       string       `json:"retailer_id"`
	Type             AlertType    `json:"type"`
	Priority         Priority     `json:"priority"`
	Payload          AlertPayload `json:"payload"`
	Status           AlertStatus  `json:"status"`
	DeliveryChannels []string     `json:"delivery_channels"`
	ScheduledFor     *time.Time   `json:"scheduled_for,omitempty"`
	RetryCount       int          `json:"retry_count"`
	FailureReason    *string      `json:"failure_reason,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// DedupKey identifies the condition an alert reports.
type DedupKey struct {
	UserID     string
	ProductID  string
	RetailerID string
	Type       AlertType
}

func (k DedupKey) String() string {
	return k.UserID + ":" + k.ProductID + ":" + k.RetailerID + ":" + string(k.Type)
}

func (a *Alert) Key() DedupKey {
	return DedupKey{UserID: a.UserID, ProductID: a.ProductID, RetailerID: a.RetailerID, Type: a.Type}
}

// Schedule defers a pending alert until at.
func (a *Alert) Schedule(at, now time.Time) error {
	if a.Status != AlertStatusPending {
		return ErrInvalidStatusTransition
	}
	at = at.UTC()
	a.ScheduledFor = &at
	a.UpdatedAt = now
	return nil
}

// MarkSent moves a pending alert to sent with the channels that delivered it.
func (a *Alert) MarkSent(channels []string, now time.Time) error {
	if a.Status != AlertStatusPending {
		return ErrInvalidStatusTransition
	}
	a.Status = AlertStatusSent
	a.DeliveryChannels = channels
	a.ScheduledFor = nil
	a.FailureReason = nil
	a.UpdatedAt = now
	return nil
}

// MarkFailed moves a pending alert to failed and counts the attempt.
func (a *Alert) MarkFailed(reason string, attempted []string, now time.Time) error {
	if a.Status != AlertStatusPending {
		return ErrInvalidStatusTransition
	}
	a.Status = AlertStatusFailed
	a.DeliveryChannels = attempted
	a.ScheduledFor = nil
	a.FailureReason = &reason
	a.RetryCount++
	a.UpdatedAt = now
	return nil
}
