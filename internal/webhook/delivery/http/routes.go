package http

import (
	"github.com/gin-gonic/gin"

	"restock-srv/internal/middleware"
)

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	r.Use(mw.InternalAuth())
	r.GET("/:id/stats", h.Stats)
	r.POST("/:id/test", h.Test)
	r.POST("/validate-url", h.ValidateURL)
}
