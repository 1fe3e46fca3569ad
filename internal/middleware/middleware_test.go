package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"restock-srv/pkg/log"
)

func newEngine(m Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Recovery())
	r.GET("/ok", m.InternalAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestInternalAuth(t *testing.T) {
	r := newEngine(New(log.NewNop(), "secret", nil))

	tcs := map[string]struct {
		key  string
		want int
	}{
		"missing": {want: http.StatusUnauthorized},
		"wrong":   {key: "nope", want: http.StatusUnauthorized},
		"valid":   {key: "secret", want: http.StatusNoContent},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ok", nil)
			if tc.key != "" {
				req.Header.Set(HeaderInternalKey, tc.key)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestInternalAuthWithoutConfiguredKey(t *testing.T) {
	r := newEngine(New(log.NewNop(), "", nil))
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderInternalKey, "anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecovery(t *testing.T) {
	r := newEngine(New(log.NewNop(), "secret", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")
}
