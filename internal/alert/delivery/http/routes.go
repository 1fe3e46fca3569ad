package http

import (
	"github.com/gin-gonic/gin"

	"restock-srv/internal/middleware"
)

// RegisterRoutes mounts the ingestion routes on r behind the internal key.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	r.Use(mw.InternalAuth())
	r.POST("/events", h.SubmitEvent)
	r.POST("/quiet-hours/validate", h.ValidateQuietHours)
}
