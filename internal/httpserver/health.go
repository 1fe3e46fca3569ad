package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restock-srv/pkg/errors"
	"restock-srv/pkg/response"
)

const (
	serviceName   = "restock-srv"
	healthTimeout = 2 * time.Second
)

var (
	errDatabaseUnavailable = errors.NewHTTPError(503, "Database connection failed", http.StatusServiceUnavailable)
	errRedisUnavailable    = errors.NewHTTPError(503, "Redis connection failed", http.StatusServiceUnavailable)
)

// dependencies pings the database and, when configured, Redis.
func (srv *HTTPServer) dependencies(ctx context.Context) (gin.H, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	deps := gin.H{"postgres": "connected", "redis": "disabled"}
	if err := srv.db.PingContext(ctx); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.dependencies.postgres: %v", err)
		return nil, errDatabaseUnavailable
	}
	if srv.redis != nil {
		if err := srv.redis.Ping(ctx); err != nil {
			srv.logger.Errorf(ctx, "internal.httpserver.dependencies.redis: %v", err)
			return nil, errRedisUnavailable
		}
		deps["redis"] = "connected"
	}
	return deps, nil
}

// healthCheck reports dependency state and the webhook backlog.
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	deps, err := srv.dependencies(c.Request.Context())
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	deps["status"] = "healthy"
	deps["service"] = serviceName
	deps["webhook_queue"] = srv.webhookUC.Len()
	response.OK(c, deps)
}

func (srv *HTTPServer) readyCheck(c *gin.Context) {
	if _, err := srv.dependencies(c.Request.Context()); err != nil {
		response.Error(c, err, nil)
		return
	}
	response.OK(c, gin.H{"status": "ready", "service": serviceName})
}

func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{"status": "alive", "service": serviceName})
}
