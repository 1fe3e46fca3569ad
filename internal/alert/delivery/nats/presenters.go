package nats

import (
	"github.com/shopspring/decimal"

	"restock-srv/internal/alert"
	"restock-srv/internal/model"
)

// eventMessage is the JSON published by the stock monitor.
type eventMessage struct {
	UserID     string `json:"user_id"`
	ProductID  string `json:"product_id"`
	RetailerID string `json:"retailer_id"`
	Type       string `json:"type"`
	Payload    struct {
		ProductName   string           `json:"product_name"`
		RetailerName  string           `json:"retailer_name"`
		Category      string           `json:"category"`
		Price         *decimal.Decimal `json:"price"`
		PreviousPrice *decimal.Decimal `json:"previous_price"`
		Currency      string           `json:"currency"`
		ProductURL    string           `json:"product_url"`
		ImageURL      string           `json:"image_url"`
		Availability  string           `json:"availability"`
	} `json:"payload"`
}

func (m eventMessage) toInput() alert.SubmitInput {
	return alert.SubmitInput{
		UserID:     m.UserID,
		ProductID:  m.ProductID,
		RetailerID: m.RetailerID,
		Type:       model.AlertType(m.Type),
		Payload: model.AlertPayload{
			ProductName:   m.Payload.ProductName,
			RetailerName:  m.Payload.RetailerName,
			Category:      m.Payload.Category,
			Price:         m.Payload.Price,
			PreviousPrice: m.Payload.PreviousPrice,
			Currency:      m.Payload.Currency,
			ProductURL:    m.Payload.ProductURL,
			ImageURL:      m.Payload.ImageURL,
			Availability:  m.Payload.Availability,
		},
	}
}

// replyMessage answers request-style publishes.
type replyMessage struct {
	Status  string `json:"status,omitempty"`
	AlertID string `json:"alert_id,omitempty"`
	Error   string `json:"error,omitempty"`
}
