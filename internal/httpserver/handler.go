package httpserver

import (
	alertHTTP "restock-srv/internal/alert/delivery/http"
	"restock-srv/internal/middleware"
	webhookHTTP "restock-srv/internal/webhook/delivery/http"
)

const (
	InternalApi = "/api/v1/internal"
)

func (srv *HTTPServer) mapHandlers() {
	mw := middleware.New(srv.logger, srv.internalKey, srv.discord)
	srv.gin.Use(mw.Recovery())

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	internal := srv.gin.Group(InternalApi)

	alertH := alertHTTP.New(srv.logger, srv.alertUC, srv.quiet, srv.discord)
	alertH.RegisterRoutes(internal.Group(""), mw)

	webhookH := webhookHTTP.New(srv.logger, srv.webhookUC, srv.discord)
	webhookH.RegisterRoutes(internal.Group("/webhooks"), mw)
}
