package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restock-srv/internal/dispatch"
	"restock-srv/internal/middleware"
	"restock-srv/internal/model"
	"restock-srv/internal/webhook"
	"restock-srv/pkg/log"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) EnqueueForAlert(ctx context.Context, a model.Alert) ([]string, error) {
	args := m.Called(ctx, a)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockUseCase) Enqueue(ctx context.Context, ip webhook.EnqueueInput) (string, error) {
	args := m.Called(ctx, ip)
	return args.String(0), args.Error(1)
}

func (m *mockUseCase) Stats(ctx context.Context, id string) (webhook.StatsOutput, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(webhook.StatsOutput), args.Error(1)
}

func (m *mockUseCase) Test(ctx context.Context, id string) (webhook.TestOutput, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(webhook.TestOutput), args.Error(1)
}

func (m *mockUseCase) ValidateURL(raw string) error {
	return m.Called(raw).Error(0)
}

func (m *mockUseCase) Start(ctx context.Context) {}
func (m *mockUseCase) Shutdown(ctx context.Context) error { return nil }
func (m *mockUseCase) Len() int { return 0 }

const internalKey = "k3y"

func newRouter(uc webhook.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	l := log.NewNop()
	New(l, uc, nil).RegisterRoutes(r.Group("/api/v1/internal/webhooks"), middleware.New(l, internalKey, nil))
	return r
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	return doBody(r, method, path, "")
}

func doBody(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderInternalKey, internalKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func TestStats(t *testing.T) {
	last := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Stats", mock.Anything, "s1").Return(webhook.StatsOutput{
		SubscriptionID:  "s1",
		TotalCalls:      4,
		SuccessfulCalls: 3,
		FailedCalls:     1,
		SuccessRate:     75,
		LastTriggered:   &last,
	}, nil)

	w := do(newRouter(uc), http.MethodGet, "/api/v1/internal/webhooks/s1/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var got map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, float64(75), got["success_rate"])
	assert.Equal(t, "2026-03-01 12:00:00", got["last_triggered"])
}

func TestStatsNotFound(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Stats", mock.Anything, "nope").Return(webhook.StatsOutput{}, webhook.ErrSubscriptionNotFound)

	w := do(newRouter(uc), http.MethodGet, "/api/v1/internal/webhooks/nope/stats")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 120002, env.ErrorCode)
}

func TestTestReportsFailureInBody(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Test", mock.Anything, "s1").Return(webhook.TestOutput{
		StatusCode: http.StatusInternalServerError,
		Error:      "endpoint returned status 500",
		Result: dispatch.DeliveryResult{
			Status:             dispatch.DeliveryStatusFailed,
			SuccessfulChannels: []string{},
			FailedChannels:     []string{model.ChannelWebhook},
			DeliveryIDs:        []string{"d1"},
		},
	}, nil)

	w := do(newRouter(uc), http.MethodPost, "/api/v1/internal/webhooks/s1/test")
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var got testResp
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, dispatch.DeliveryStatusFailed, got.Result.Status)
	assert.Equal(t, 500, got.StatusCode)
	assert.Equal(t, []string{model.ChannelWebhook}, got.Result.FailedChannels)
}

func TestRoutesRequireInternalKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/internal/webhooks/s1/stats", nil)
	w := httptest.NewRecorder()
	newRouter(&mockUseCase{}).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateURL(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("ValidateURL", "https://hooks.example.com/in").Return(nil)
	uc.On("ValidateURL", "http://10.0.0.5/in").Return(fmt.Errorf("%w: https is required", webhook.ErrInvalidURL))
	r := newRouter(uc)

	w := doBody(r, http.MethodPost, "/api/v1/internal/webhooks/validate-url", `{"url":"https://hooks.example.com/in"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)

	w = doBody(r, http.MethodPost, "/api/v1/internal/webhooks/validate-url", `{"url":"http://10.0.0.5/in"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, codeInvalidURL, env.ErrorCode)

	w = doBody(r, http.MethodPost, "/api/v1/internal/webhooks/validate-url", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
