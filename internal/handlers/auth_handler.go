package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ghostlake/jobtrack/internal/apierr"
	"github.com/ghostlake/jobtrack/internal/dtos"
	"github.com/ghostlake/jobtrack/internal/middleware"
	"github.com/ghostlake/jobtrack/internal/models"
	"github.com/ghostlake/jobtrack/internal/services"
	"github.com/ghostlake/jobtrack/internal/token"
	"github.com/google/uuid"
)

// UserService is what the auth handler needs from the user layer.
type UserService interface {
	Register(email, password string) (*models.User, error)
	Authenticate(email, password string) (string, error)
	GetByID(id uuid.UUID) (*models.User, error)
}

type AuthHandler struct {
	Users UserService
}

func NewAuthHandler(users UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// Register is POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apierr.BadRequest("email and a password of at least 8 characters are required").WithCause(err))
		return
	}

	user, err := h.Users.Register(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			_ = c.Error(apierr.Conflict("email already registered"))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dtos.UserResponse{ID: user.ID.String(), Email: user.Email})
}

// Login is POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apierr.BadRequest("email and password are required").WithCause(err))
		return
	}

	tok, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadCredentials):
			_ = c.Error(apierr.Unauthorized("invalid email or password"))
		case errors.Is(err, token.ErrNoSigningKey):
			_ = c.Error(apierr.Internal("server misconfigured").WithCause(err))
		default:
			_ = c.Error(err)
		}
		return
	}

	c.JSON(http.StatusOK, dtos.TokenResponse{Token: tok})
}

// Me is GET /auth/me. The 404 covers a subject whose row vanished after the
// credential was issued.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := subjectUUID(c)
	if !ok {
		return
	}

	user, err := h.Users.GetByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			_ = c.Error(apierr.NotFound("user not found"))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.UserResponse{ID: user.ID.String(), Email: user.Email})
}

// subjectUUID parses the guard-injected subject id. A subject that is not a
// UUID can only come from a token we did not issue, so it reads as
// unauthenticated.
func subjectUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(middleware.SubjectID(c))
	if err != nil {
		_ = c.Error(apierr.Unauthorized("invalid or expired credential").WithCause(err))
		c.Abort()
		return uuid.Nil, false
	}
	return id, true
}
