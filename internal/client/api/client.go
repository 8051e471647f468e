// Package api is the client's single chokepoint for talking to the server.
// Every call attaches the current credential, and every 401 response fans
// out to the session's unauthorized handler exactly once.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ghostlake/jobtrack/internal/client/session"
	"github.com/ghostlake/jobtrack/internal/dtos"
	"github.com/ghostlake/jobtrack/internal/models"
	"github.com/google/uuid"
)

// ErrNetwork marks transport-level failures (no connectivity, timeouts).
var ErrNetwork = errors.New("network error")

// APIError is any non-2xx response, carrying the server's envelope when it
// could be parsed.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client is the authenticated transport. It reads the session's current
// credential at request time, never a captured copy.
type Client struct {
	base    string
	http    *http.Client
	session *session.Session
}

// New creates a Client for the given base URL.
func New(base string, sess *session.Session) *Client {
	return &Client{
		base:    strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: sess,
	}
}

// do performs one request. Body is JSON-encoded when non-nil. On 2xx the
// response is decoded into out; an out of *string receives the raw body
// unparsed, so non-JSON responses pass through rather than failing.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Current(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Fan out to the registered logout action once, then still surface
		// the error so the call site can decide what to show.
		c.session.NotifyUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(raw)
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unexpected response body: %w", err)
	}
	return nil
}

// parseError builds an APIError from the server's {error, message} envelope,
// falling back to a generic message when the body is unparseable.
func parseError(status int, raw []byte) *APIError {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	apiErr := &APIError{Status: status, Message: "request failed"}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != "" {
			apiErr.Code = envelope.Error
		}
		if envelope.Message != "" {
			apiErr.Message = envelope.Message
		}
	}
	if apiErr.Code == "" {
		apiErr.Code = http.StatusText(status)
	}
	return apiErr
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, email, password string) (*dtos.UserResponse, error) {
	var user dtos.UserResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", dtos.RegisterRequest{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and returns the issued credential. The caller decides
// whether to store it in the session.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp dtos.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dtos.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*dtos.UserResponse, error) {
	var user dtos.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListApplications returns the caller's applications, newest first.
func (c *Client) ListApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.do(ctx, http.MethodGet, "/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// CreateApplication stores a new application.
func (c *Client) CreateApplication(ctx context.Context, req dtos.CreateApplicationRequest) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodPost, "/applications", req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplicationStatus changes one application's status and returns the
// server's authoritative record.
func (c *Client) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) (*models.Application, error) {
	var app models.Application
	err := c.do(ctx, http.MethodPatch, "/applications/"+id.String()+"/status", dtos.UpdateStatusRequest{Status: status}, &app)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// DeleteApplication removes one application.
func (c *Client) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	var resp dtos.OKResponse
	return c.do(ctx, http.MethodDelete, "/applications/"+id.String(), nil, &resp)
}

// ExtractSkills asks the server for an AI skill report on a job description.
func (c *Client) ExtractSkills(ctx context.Context, jobDescription string) (*dtos.SkillReport, error) {
	var report dtos.SkillReport
	err := c.do(ctx, http.MethodPost, "/ai/extract-skills", dtos.ExtractSkillsRequest{JobDescription: jobDescription}, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
