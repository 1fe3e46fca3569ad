package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"restock-srv/internal/alert"
	"restock-srv/internal/quiethours"
	"restock-srv/internal/webhook"
	"restock-srv/pkg/discord"
	"restock-srv/pkg/log"
	pkgRedis "restock-srv/pkg/redis"
)

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) maps the routes and serves until its context ends.
type HTTPServer struct {
	// Server configuration
	gin         *gin.Engine
	srv         *http.Server
	logger      log.Logger
	host        string
	port        int
	internalKey string

	// Domain use cases
	alertUC   alert.UseCase
	webhookUC webhook.UseCase
	quiet     quiethours.Calculator

	// External services
	db      *sql.DB
	redis   pkgRedis.IRedis
	discord discord.IDiscord
}

// Config is the constructor input for HTTPServer.
type Config struct {
	// Server configuration
	Host        string
	Port        int
	Mode        string
	InternalKey string

	// Domain use cases
	AlertUC    alert.UseCase
	WebhookUC  webhook.UseCase
	QuietHours quiethours.Calculator

	// External services. Redis and Discord are optional.
	DB      *sql.DB
	Redis   pkgRedis.IRedis
	Discord discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run() to start the service.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		gin:         gin.New(),
		logger:      logger,
		host:        cfg.Host,
		port:        cfg.Port,
		internalKey: cfg.InternalKey,

		alertUC:   cfg.AlertUC,
		webhookUC: cfg.WebhookUC,
		quiet:     cfg.QuietHours,

		db:      cfg.DB,
		redis:   cfg.Redis,
		discord: cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	return srv, nil
}

// validate ensures all required dependencies are provided.
func (s *HTTPServer) validate() error {
	if s.logger == nil {
		return errors.New("logger is required")
	}
	if s.port == 0 {
		return errors.New("port is required")
	}
	if s.internalKey == "" {
		return errors.New("internal key is required")
	}
	if s.alertUC == nil || s.webhookUC == nil || s.quiet == nil {
		return errors.New("alert, webhook and quiet hours use cases are required")
	}
	if s.db == nil {
		return errors.New("database is required")
	}
	return nil
}
