package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ghostlake/jobtrack/internal/logging"
	"github.com/ghostlake/jobtrack/internal/middleware"
	"github.com/ghostlake/jobtrack/internal/token"
	"github.com/stretchr/testify/require"
)

// Shared fixtures for handler tests: a real token manager and guard in front
// of the handlers, stub services behind them.

var testTokens = token.NewManager("handler-test-secret", time.Hour)

func newTestRouter(register func(r *gin.Engine, requireAuth gin.HandlerFunc)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Errors(logging.New(8), true))
	register(r, middleware.RequireAuth(testTokens))
	return r
}

func bearerFor(t *testing.T, subject string) string {
	t.Helper()
	tok, err := testTokens.Issue(subject, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(t *testing.T, r *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
