package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"restock-srv/pkg/log"
)

var (
	ErrWebhookRequired   = errors.New("discord: webhook id and token are required")
	ErrInvalidWebhookURL = errors.New("discord: invalid webhook URL")
)

type IDiscord interface {
	SendMessage(ctx context.Context, content string) error
	SendEmbed(ctx context.Context, options MessageOptions) error
	SendError(ctx context.Context, title, description string, err error) error
	ReportBug(ctx context.Context, message string) error
	GetWebhookURL() string
	Close() error
}

// New builds a client for the webhook identified by id and token.
func New(l log.Logger, id, token string, cfg Config) (IDiscord, error) {
	if id == "" || token == "" {
		return nil, ErrWebhookRequired
	}
	return newImpl(l, fmt.Sprintf(webhookURLTemplate, id, token), cfg), nil
}

// NewFromURL builds a client from a full https://discord.com/api/webhooks/{id}/{token} URL.
func NewFromURL(l log.Logger, webhookURL string, cfg Config) (IDiscord, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	return New(l, id, token, cfg)
}

// ParseWebhookURL splits a Discord webhook URL into its id and token.
func ParseWebhookURL(webhookURL string) (id, token string, err error) {
	webhookURL = strings.TrimSpace(webhookURL)
	if !strings.HasPrefix(webhookURL, webhookURLPrefix) {
		return "", "", ErrInvalidWebhookURL
	}
	parts := strings.SplitN(strings.TrimPrefix(webhookURL, webhookURLPrefix), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" || strings.Contains(parts[1], "/") {
		return "", "", ErrInvalidWebhookURL
	}
	return parts[0], parts[1], nil
}

func newImpl(l log.Logger, url string, cfg Config) *discordImpl {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryCount < 0 {
		cfg.RetryCount = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if cfg.DefaultUsername == "" {
		cfg.DefaultUsername = def.DefaultUsername
	}

	return &discordImpl{
		l:      l,
		url:    url,
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

func (d *discordImpl) GetWebhookURL() string {
	return d.url
}

func (d *discordImpl) Close() error {
	d.client.CloseIdleConnections()
	return nil
}
