package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ghostlake/jobtrack/internal/apierr"
	"github.com/ghostlake/jobtrack/internal/token"
)

// subjectKey is the gin context key the resolved subject id is stored under.
const subjectKey = "subjectID"

// RequireAuth validates the bearer credential on each request and injects the
// resolved subject id for downstream handlers.
//
// Rejection cases, all 401 to the client:
//   - no Authorization header
//   - wrong scheme or empty token
//   - signature/expiry/shape failure from the codec
//
// A missing signing key is a server misconfiguration and answers 500, so an
// unauthenticated caller can never be confused with a broken server.
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWith(c, apierr.Unauthorized("missing credential"))
			return
		}

		scheme, rest, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(rest) == "" {
			abortWith(c, apierr.Unauthorized("malformed authorization header"))
			return
		}

		subject, err := tokens.Verify(strings.TrimSpace(rest))
		if err != nil {
			if errors.Is(err, token.ErrNoSigningKey) {
				abortWith(c, apierr.Internal("server misconfigured").WithCause(err))
				return
			}
			abortWith(c, apierr.Unauthorized("invalid or expired credential").WithCause(err))
			return
		}

		c.Set(subjectKey, subject)
		c.Next()
	}
}

// SubjectID returns the authenticated subject id injected by RequireAuth.
func SubjectID(c *gin.Context) string {
	return c.GetString(subjectKey)
}

func abortWith(c *gin.Context, err *apierr.Error) {
	_ = c.Error(err)
	c.Abort()
}
