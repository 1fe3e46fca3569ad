package http

import (
	"restock-srv/internal/webhook"
	"restock-srv/pkg/discord"
	"restock-srv/pkg/log"
)

type Handler struct {
	l       log.Logger
	uc      webhook.UseCase
	discord discord.IDiscord
}

func New(l log.Logger, uc webhook.UseCase, d discord.IDiscord) *Handler {
	return &Handler{
		l:       l,
		uc:      uc,
		discord: d,
	}
}
