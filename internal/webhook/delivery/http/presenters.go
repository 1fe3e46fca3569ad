package http

import (
	"time"

	"restock-srv/internal/dispatch"
	"restock-srv/internal/webhook"
	"restock-srv/pkg/response"
)

type statsResp struct {
	SubscriptionID  string             `json:"subscription_id"`
	TotalCalls      int64              `json:"total_calls"`
	SuccessfulCalls int64              `json:"successful_calls"`
	FailedCalls     int64              `json:"failed_calls"`
	SuccessRate     float64            `json:"success_rate"`
	LastTriggered   *response.DateTime `json:"last_triggered,omitempty"`
}

func newStatsResp(o webhook.StatsOutput) statsResp {
	resp := statsResp{
		SubscriptionID:  o.SubscriptionID,
		TotalCalls:      o.TotalCalls,
		SuccessfulCalls: o.SuccessfulCalls,
		FailedCalls:     o.FailedCalls,
		SuccessRate:     o.SuccessRate,
	}
	if o.LastTriggered != nil {
		t := response.DateTime(o.LastTriggered.In(time.UTC))
		resp.LastTriggered = &t
	}
	return resp
}

type testResp struct {
	Result     dispatch.DeliveryResult `json:"result"`
	StatusCode int                     `json:"status_code,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

func newTestResp(o webhook.TestOutput) testResp {
	return testResp{
		Result:     o.Result,
		StatusCode: o.StatusCode,
		Error:      o.Error,
	}
}

type validateURLReq struct {
	URL string `json:"url" binding:"required"`
}

type validateURLResp struct {
	URL   string `json:"url"`
	Valid bool   `json:"valid"`
}
