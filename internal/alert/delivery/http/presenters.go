package http

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"restock-srv/internal/alert"
	"restock-srv/internal/model"
	"restock-srv/internal/quiethours"
	"restock-srv/pkg/errors"
)

type payloadReq struct {
	ProductName   string           `json:"product_name"`
	RetailerName  string           `json:"retailer_name"`
	Category      string           `json:"category"`
	Price         *decimal.Decimal `json:"price"`
	PreviousPrice *decimal.Decimal `json:"previous_price"`
	Currency      string           `json:"currency"`
	ProductURL    string           `json:"product_url"`
	ImageURL      string           `json:"image_url"`
	Availability  string           `json:"availability"`
}

type SubmitEventReq struct {
	UserID     string     `json:"user_id"`
	ProductID  string     `json:"product_id"`
	RetailerID string     `json:"retailer_id"`
	Type       string     `json:"type"`
	Payload    payloadReq `json:"payload"`
}

// validate reports every bad field at once.
func (r SubmitEventReq) validate() error {
	coll := errors.NewValidationErrorCollector()
	required := []struct{ field, value string }{
		{"user_id", r.UserID},
		{"product_id", r.ProductID},
		{"retailer_id", r.RetailerID},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			coll.Add(errors.NewValidationError(codeFieldRequired, f.field, "is required"))
		}
	}
	if !model.AlertType(r.Type).IsValid() {
		coll.Add(errors.NewValidationError(codeFieldInvalid, "type", "must be one of restock, price_drop, low_stock, pre_order"))
	}
	if r.Payload.Price != nil && r.Payload.Price.IsNegative() {
		coll.Add(errors.NewValidationError(codeFieldInvalid, "payload.price", "must not be negative"))
	}
	if coll.HasError() {
		return coll
	}
	return nil
}

func (r SubmitEventReq) toInput() alert.SubmitInput {
	return alert.SubmitInput{
		UserID:     r.UserID,
		ProductID:  r.ProductID,
		RetailerID: r.RetailerID,
		Type:       model.AlertType(r.Type),
		Payload: model.AlertPayload{
			ProductName:   r.Payload.ProductName,
			RetailerName:  r.Payload.RetailerName,
			Category:      r.Payload.Category,
			Price:         r.Payload.Price,
			PreviousPrice: r.Payload.PreviousPrice,
			Currency:      r.Payload.Currency,
			ProductURL:    r.Payload.ProductURL,
			ImageURL:      r.Payload.ImageURL,
			Availability:  r.Payload.Availability,
		},
	}
}

type deliveryResp struct {
	Status             string            `json:"status"`
	SuccessfulChannels []string          `json:"successful_channels"`
	FailedChannels     []string          `json:"failed_channels"`
	DeliveryIDs        []string          `json:"delivery_ids"`
	Errors             map[string]string `json:"errors,omitempty"`
}

type SubmitEventResp struct {
	Status       string        `json:"status"`
	AlertID      string        `json:"alert_id,omitempty"`
	ScheduledFor *time.Time    `json:"scheduled_for,omitempty"`
	Delivery     *deliveryResp `json:"delivery,omitempty"`
}

func newSubmitEventResp(o alert.SubmitOutput) SubmitEventResp {
	resp := SubmitEventResp{
		Status:       string(o.Status),
		AlertID:      o.AlertID,
		ScheduledFor: o.ScheduledFor,
	}
	if o.Delivery != nil {
		resp.Delivery = &deliveryResp{
			Status:             string(o.Delivery.Status),
			SuccessfulChannels: o.Delivery.SuccessfulChannels,
			FailedChannels:     o.Delivery.FailedChannels,
			DeliveryIDs:        o.Delivery.DeliveryIDs,
			Errors:             o.Delivery.Errors,
		}
	}
	return resp
}

type ValidateQuietHoursReq struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
	Days      []int  `json:"days"`
}

func (r ValidateQuietHoursReq) toConfig() model.QuietHoursConfig {
	return model.QuietHoursConfig{
		Enabled:   r.Enabled,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Timezone:  r.Timezone,
		Days:      r.Days,
	}
}

type ValidateQuietHoursResp struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

func newValidateQuietHoursResp(v quiethours.ValidationResult) ValidateQuietHoursResp {
	errs := v.Errors
	if errs == nil {
		errs = []string{}
	}
	return ValidateQuietHoursResp{IsValid: v.IsValid, Errors: errs}
}
