package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ghostlake/jobtrack/internal/apierr"
	"github.com/ghostlake/jobtrack/internal/dtos"
	"github.com/ghostlake/jobtrack/internal/models"
	"github.com/ghostlake/jobtrack/internal/services"
	"github.com/google/uuid"
)

// ApplicationService is what the handler needs from the application layer.
type ApplicationService interface {
	List(userID uuid.UUID) ([]models.Application, error)
	Create(userID uuid.UUID, req *dtos.CreateApplicationRequest) (*models.Application, error)
	UpdateStatus(userID, id uuid.UUID, status string) (*models.Application, error)
	Delete(userID, id uuid.UUID) error
}

type ApplicationHandler struct {
	Applications ApplicationService
}

func NewApplicationHandler(apps ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps}
}

// List is GET /applications, newest application date first.
func (h *ApplicationHandler) List(c *gin.Context) {
	userID, ok := subjectUUID(c)
	if !ok {
		return
	}

	apps, err := h.Applications.List(userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Create is POST /applications.
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := subjectUUID(c)
	if !ok {
		return
	}

	var req dtos.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apierr.BadRequest("company and role are required").WithCause(err))
		return
	}

	app, err := h.Applications.Create(userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// UpdateStatus is PATCH /applications/:id/status.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := subjectUUID(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}

	var req dtos.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidStatus(req.Status) {
		_ = c.Error(apierr.BadRequest("invalid status"))
		return
	}

	app, err := h.Applications.UpdateStatus(userID, id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			_ = c.Error(apierr.NotFound("application not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Delete is DELETE /applications/:id.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	userID, ok := subjectUUID(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}

	if err := h.Applications.Delete(userID, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			_ = c.Error(apierr.NotFound("application not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dtos.OKResponse{OK: true})
}

// recordID parses the :id path parameter. A malformed id cannot match any
// record, so it reads as not found rather than bad request.
func recordID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apierr.NotFound("application not found"))
		return uuid.Nil, false
	}
	return id, true
}
