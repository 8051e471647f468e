package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSigningKey means the server is misconfigured: no secret was provided.
// Callers must map this to a 500, never a 401.
var ErrNoSigningKey = errors.New("token: signing key not configured")

// ErrInvalidCredential covers every client-side verification failure:
// bad signature, malformed token, expiry, empty subject. Callers must not
// distinguish between them.
var ErrInvalidCredential = errors.New("token: invalid or expired credential")

// Claims carries the standard registered claims; the subject id lives in "sub".
type Claims struct {
	jwt.RegisteredClaims
}

// Manager issues and verifies signed bearer credentials with a symmetric key.
// It holds no mutable state and is safe for concurrent use.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager with the given HMAC secret and default TTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Configured reports whether a signing key is present.
func (m *Manager) Configured() bool {
	return len(m.secret) > 0
}

// TTL returns the default credential lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a credential for subjectID valid for ttl from now.
func (m *Manager) Issue(subjectID string, ttl time.Duration) (string, error) {
	if !m.Configured() {
		return "", ErrNoSigningKey
	}
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return tok.SignedString(m.secret)
}

// Verify checks the signature and expiry and returns the embedded subject id.
// Any failure, including an empty subject, comes back as ErrInvalidCredential.
func (m *Manager) Verify(tokenString string) (string, error) {
	if !m.Configured() {
		return "", ErrNoSigningKey
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredential
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidCredential
	}

	if claims.Subject == "" {
		return "", ErrInvalidCredential
	}
	return claims.Subject, nil
}
