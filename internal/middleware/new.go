package middleware

import (
	"restock-srv/pkg/discord"
	"restock-srv/pkg/log"
)

// HeaderInternalKey carries the shared key of internal callers.
const HeaderInternalKey = "X-Internal-Key"

type Middleware struct {
	l           log.Logger
	internalKey string
	discord     discord.IDiscord
}

// New builds the middleware set. discord may be nil.
func New(l log.Logger, internalKey string, d discord.IDiscord) Middleware {
	return Middleware{
		l:           l,
		internalKey: internalKey,
		discord:     d,
	}
}
