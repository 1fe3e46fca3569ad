package alert

import (
	"fmt"
	"strings"
	"time"

	"restock-srv/internal/dispatch"
	"restock-srv/internal/model"
)

type SubmitInput struct {
	UserID     string
	ProductID  string
	RetailerID string
	Type       model.AlertType
	Payload    model.AlertPayload
}

func (ip SubmitInput) Key() model.DedupKey {
	return model.DedupKey{UserID: ip.UserID, ProductID: ip.ProductID, RetailerID: ip.RetailerID, Type: ip.Type}
}

// Validate returns an error wrapping ErrInvalidInput.
func (ip SubmitInput) Validate() error {
	var missing []string
	if strings.TrimSpace(ip.UserID) == "" {
		missing = append(missing, "user_id")
	}
	if strings.TrimSpace(ip.ProductID) == "" {
		missing = append(missing, "product_id")
	}
	if strings.TrimSpace(ip.RetailerID) == "" {
		missing = append(missing, "retailer_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	if !ip.Type.IsValid() {
		return fmt.Errorf("%w: unknown alert type %q", ErrInvalidInput, ip.Type)
	}
	if ip.Payload.Price != nil && ip.Payload.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

// SubmitStatus is the outcome of one event. Rejections are statuses, not errors.
type SubmitStatus string

const (
	StatusAccepted     SubmitStatus = "accepted"
	StatusDeduplicated SubmitStatus = "deduplicated"
	StatusRateLimited  SubmitStatus = "rate_limited"
	StatusScheduled    SubmitStatus = "scheduled"
)

type SubmitOutput struct {
	Status       SubmitStatus
	AlertID      string
	ScheduledFor *time.Time
	// Delivery is set when the alert was dispatched right away.
	Delivery *dispatch.DeliveryResult
}

type SweepOutput struct {
	Due         int
	Dispatched  int
	Rescheduled int
	Skipped     int
	Failed      int
}
