package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"restock-srv/pkg/response"
)

// InternalAuth rejects requests whose X-Internal-Key does not match the configured key.
func (m Middleware) InternalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderInternalKey)
		if key == "" {
			m.l.Warnf(c.Request.Context(), "Missing %s header | Path: %s", HeaderInternalKey, c.Request.URL.Path)
			response.Unauthorized(c)
			return
		}
		if m.internalKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.internalKey)) != 1 {
			m.l.Warnf(c.Request.Context(), "Invalid %s header | Path: %s", HeaderInternalKey, c.Request.URL.Path)
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}
