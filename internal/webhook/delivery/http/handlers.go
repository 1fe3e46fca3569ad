package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"restock-srv/pkg/errors"
	"restock-srv/pkg/response"
)

// Stats returns delivery counters for one subscription.
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, errMissingID, nil)
		return
	}

	out, err := h.uc.Stats(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "internal.webhook.delivery.http.Stats: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}
	response.OK(c, newStatsResp(out))
}

// Test sends one webhook.test delivery and reports how the endpoint answered.
// A failing endpoint is still a 200: the outcome is in the body.
func (h *Handler) Test(c *gin.Context) {
	ctx := c.Request.Context()

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, errMissingID, nil)
		return
	}

	out, err := h.uc.Test(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "internal.webhook.delivery.http.Test: %v", err)
		response.ErrorWithMap(c, err, errMap, h.discord)
		return
	}
	response.OK(c, newTestResp(out))
}

// ValidateURL checks an endpoint before the settings API stores it. A rejected URL is a
// validation error on field "url".
func (h *Handler) ValidateURL(c *gin.Context) {
	var req validateURLReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errWrongBody, nil)
		return
	}

	if err := h.uc.ValidateURL(req.URL); err != nil {
		response.Error(c, errors.NewValidationError(codeInvalidURL, "url", err.Error()), nil)
		return
	}
	response.OK(c, validateURLResp{URL: req.URL, Valid: true})
}
