package dispatch

type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

type SendResult struct {
	DeliveryIDs []string
}

type DeliveryResult struct {
	AlertID            string            `json:"alert_id"`
	Status             DeliveryStatus    `json:"status"`
	SuccessfulChannels []string          `json:"successful_channels"`
	FailedChannels     []string          `json:"failed_channels"`
	DeliveryIDs        []string          `json:"delivery_ids"`
	Errors             map[string]string `json:"errors,omitempty"`
}

// Attempted lists every channel that was tried, successful first.
func (r DeliveryResult) Attempted() []string {
	out := make([]string, 0, len(r.SuccessfulChannels)+len(r.FailedChannels))
	out = append(out, r.SuccessfulChannels...)
	return append(out, r.FailedChannels...)
}
