package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restock-srv/internal/alert"
	"restock-srv/internal/model"
	"restock-srv/internal/quiethours"
	"restock-srv/internal/webhook"
	"restock-srv/pkg/log"
)

type stubAlertUC struct{}

func (stubAlertUC) SubmitAvailabilityEvent(ctx context.Context, ip alert.SubmitInput) (alert.SubmitOutput, error) {
	return alert.SubmitOutput{Status: alert.StatusDeduplicated}, nil
}

func (stubAlertUC) ProcessDueAlerts(ctx context.Context) (alert.SweepOutput, error) {
	return alert.SweepOutput{}, nil
}

type stubWebhookUC struct{}

func (stubWebhookUC) EnqueueForAlert(ctx context.Context, a model.Alert) ([]string, error) {
	return nil, nil
}

func (stubWebhookUC) Enqueue(ctx context.Context, ip webhook.EnqueueInput) (string, error) {
	return "", nil
}

func (stubWebhookUC) Stats(ctx context.Context, id string) (webhook.StatsOutput, error) {
	return webhook.StatsOutput{}, webhook.ErrSubscriptionNotFound
}

func (stubWebhookUC) Test(ctx context.Context, id string) (webhook.TestOutput, error) {
	return webhook.TestOutput{}, nil
}

func (stubWebhookUC) ValidateURL(raw string) error { return nil }

func (stubWebhookUC) Start(ctx context.Context) {}

func (stubWebhookUC) Shutdown(ctx context.Context) error { return nil }

func (stubWebhookUC) Len() int { return 3 }

func newServer(t *testing.T) (*HTTPServer, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv, err := New(log.NewNop(), Config{
		Port:        8080,
		Mode:        "test",
		InternalKey: "k",
		AlertUC:     stubAlertUC{},
		WebhookUC:   stubWebhookUC{},
		QuietHours:  quiethours.New(),
		DB:          db,
	})
	require.NoError(t, err)
	srv.mapHandlers()
	return srv, mock
}

func get(srv *HTTPServer, path string, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if key != "" {
		req.Header.Set("X-Internal-Key", key)
	}
	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, req)
	return w
}

func TestNewValidates(t *testing.T) {
	_, err := New(log.NewNop(), Config{Port: 8080})
	assert.Error(t, err)
}

func TestHealthEndpoints(t *testing.T) {
	srv, mock := newServer(t)

	mock.ExpectPing()
	w := get(srv, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"webhook_queue":3`)
	assert.Contains(t, w.Body.String(), `"redis":"disabled"`)

	mock.ExpectPing().WillReturnError(errors.New("down"))
	w = get(srv, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = get(srv, "/live", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInternalRoutesMounted(t *testing.T) {
	srv, _ := newServer(t)

	assert.Equal(t, http.StatusUnauthorized, get(srv, "/api/v1/internal/webhooks/s1/stats", "").Code)
	assert.Equal(t, http.StatusNotFound, get(srv, "/api/v1/internal/webhooks/s1/stats", "k").Code)
}
