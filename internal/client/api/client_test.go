package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghostlake/jobtrack/internal/client/session"
	"github.com/ghostlake/jobtrack/internal/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachesCurrentCredential(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","email":"a@b.com"}`))
	}))
	defer srv.Close()

	sess := session.New("")
	client := New(srv.URL, sess)

	// No credential yet: header omitted.
	_, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	// Token set after client construction is still picked up: the transport
	// reads the current value at request time.
	sess.Set("tok-123")
	_, err = client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestUnauthorizedFansOutOncePerCall(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"UNAUTHORIZED","message":"invalid or expired credential"}`))
	}))
	defer srv.Close()

	sess := session.New("")
	sess.Set("expired-token")
	fired := 0
	sess.SetUnauthorizedHandler(func() {
		fired++
		sess.Clear()
	})
	client := New(srv.URL, sess)

	_, err := client.ListApplications(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, fired, "handler fires exactly once per call")
	assert.Empty(t, sess.Current(), "handler cleared the stored credential")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
}

func TestNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := New(srv.URL, session.New(""))

	_, err := client.ListApplications(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestRemoteErrorEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"CONFLICT","message":"email already registered"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, session.New(""))

	_, err := client.Register(context.Background(), "a@b.com", "longenough1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	assert.Equal(t, "email already registered", apiErr.Message)
}

func TestRemoteErrorUnparseableBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream exploded</html>"))
	}))
	defer srv.Close()

	client := New(srv.URL, session.New(""))

	_, err := client.ExtractSkills(context.Background(), "desc")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "request failed", apiErr.Message)
}

// A 2xx with a non-JSON body passes through as raw text rather than failing.
func TestPlainTextResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}))
	defer srv.Close()

	client := New(srv.URL, session.New(""))

	var raw string
	err := client.do(context.Background(), http.MethodGet, "/ping", nil, &raw)
	require.NoError(t, err)
	assert.Equal(t, "pong", raw)
}

func TestLoginRoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		var req dtos.LoginRequest
		require.NoError(t, decodeJSONBody(r, &req))
		require.Equal(t, "a@b.com", req.Email)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"fresh-token"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, session.New(""))

	tok, err := client.Login(context.Background(), "a@b.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", tok)
}

func decodeJSONBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
