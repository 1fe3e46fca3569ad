package response

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restock-srv/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Resp {
	t.Helper()
	var r Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	return r
}

func TestErrorWithMap(t *testing.T) {
	errNotFound := stderrors.New("not found")
	eMap := ErrorMapping{
		errNotFound: errors.NewHTTPError(120001, "Webhook not found", http.StatusNotFound),
	}

	tcs := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{name: "mapped", err: errNotFound, wantStatus: http.StatusNotFound, wantCode: 120001},
		{name: "wrapped mapped", err: fmt.Errorf("repo: %w", errNotFound), wantStatus: http.StatusNotFound, wantCode: 120001},
		{name: "validation", err: errors.NewValidationError(400, "user_id", "is required"), wantStatus: http.StatusBadRequest, wantCode: 400},
		{name: "unknown", err: stderrors.New("db down"), wantStatus: http.StatusInternalServerError, wantCode: InternalServerErrorCode},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			ErrorWithMap(c, tc.err, eMap, nil)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantCode, decode(t, w).ErrorCode)
		})
	}
}

func TestValidationCollector(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	coll := errors.NewValidationErrorCollector().
		Add(errors.NewValidationError(400, "start", "invalid time")).
		Add(errors.NewValidationError(400, "days", "duplicate day"))

	Error(c, coll, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, ValidationErrorMsg, resp.Message)
	assert.Len(t, resp.Errors, 2)
}

func TestSplitReport(t *testing.T) {
	msg := strings.Repeat("a", reportChunkMaxLen+10) + "\nshort line"
	chunks := splitReport(msg)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], reportChunkMaxLen)
	assert.Contains(t, chunks[1], "short line")
}

func TestBuildReportRedactsSecrets(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/internal/events", strings.NewReader(`{"user_id":"u1"}`))
	c.Request.Header.Set("X-Internal-Key", "topsecret")

	out := buildReport(c, "boom", nil)

	assert.NotContains(t, out, "topsecret")
	assert.Contains(t, out, "\"user_id\": \"u1\"")
	assert.Contains(t, out, "Error   : boom")
}
