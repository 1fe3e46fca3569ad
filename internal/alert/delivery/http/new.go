package http

import (
	"restock-srv/internal/alert"
	"restock-srv/internal/quiethours"
	"restock-srv/pkg/discord"
	"restock-srv/pkg/log"
)

type Handler struct {
	l       log.Logger
	uc      alert.UseCase
	quiet   quiethours.Calculator
	discord discord.IDiscord
}

func New(l log.Logger, uc alert.UseCase, quiet quiethours.Calculator, d discord.IDiscord) *Handler {
	return &Handler{
		l:       l,
		uc:      uc,
		quiet:   quiet,
		discord: d,
	}
}
