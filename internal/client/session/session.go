// Package session holds the client's current credential: the single source
// of truth for "am I authenticated", persisted across program runs.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type storedToken struct {
	Token string `json:"token"`
}

// Session is the process-wide credential holder. At most one credential is
// held at a time; Set replaces it wholesale. The durable file is best-effort:
// if it cannot be read or written the session degrades to in-memory only.
type Session struct {
	mu             sync.Mutex
	token          string
	path           string
	onUnauthorized func()
}

// DefaultPath returns the durable token location under the user's home.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jobtrack", "token.json")
}

// New creates a Session backed by the given file path and loads any
// previously saved credential. An empty path disables persistence.
func New(path string) *Session {
	s := &Session{path: path}
	s.load()
	return s
}

func (s *Session) load() {
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return
	}
	s.token = st.Token
}

// Current returns the held credential, or "" when absent.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Set replaces the credential and saves it durably.
func (s *Session) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.save(token)
}

// Clear drops the credential and removes the durable file. Calling it when
// already absent is a no-op.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.path != "" {
		_ = os.Remove(s.path)
	}
}

func (s *Session) save(token string) {
	if s.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	data, err := json.Marshal(storedToken{Token: token})
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o600)
}

// SetUnauthorizedHandler registers the handler invoked when the transport
// observes an authentication failure. Exactly one handler is active at a
// time; re-registration replaces it.
func (s *Session) SetUnauthorizedHandler(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUnauthorized = fn
}

// NotifyUnauthorized invokes the registered handler, if any. Called by the
// transport once per 401 response; the handler runs outside the lock.
func (s *Session) NotifyUnauthorized() {
	s.mu.Lock()
	fn := s.onUnauthorized
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
