package http

import (
	"github.com/gin-gonic/gin"

	"restock-srv/internal/alert"
	"restock-srv/pkg/response"
)

// SubmitEvent evaluates one availability event.
// Duplicate and rate-limited events are successful replies carrying their status.
func (h *Handler) SubmitEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var req SubmitEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.SubmitEvent.ShouldBindJSON: %v", err)
		response.Error(c, errWrongBody, nil)
		return
	}
	if err := req.validate(); err != nil {
		h.l.Warnf(ctx, "internal.alert.delivery.http.SubmitEvent.validate: %v", err)
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.SubmitAvailabilityEvent(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "internal.alert.delivery.http.SubmitEvent.SubmitAvailabilityEvent: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}

	if out.Status == alert.StatusScheduled {
		response.Accepted(c, newSubmitEventResp(out))
		return
	}
	response.OK(c, newSubmitEventResp(out))
}

// ValidateQuietHours checks a quiet-hours config before the settings API stores it.
func (h *Handler) ValidateQuietHours(c *gin.Context) {
	var req ValidateQuietHoursReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errWrongBody, nil)
		return
	}
	response.OK(c, newValidateQuietHoursResp(h.quiet.Validate(req.toConfig())))
}
