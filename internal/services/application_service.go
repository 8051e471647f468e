package services

import (
	"errors"
	"strings"
	"time"

	"github.com/ghostlake/jobtrack/internal/dtos"
	"github.com/ghostlake/jobtrack/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// List returns the owner's applications, newest application date first.
func (s *ApplicationService) List(userID uuid.UUID) ([]models.Application, error) {
	apps := []models.Application{}
	err := s.DB.Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Create stores a new application with server-assigned id, initial status
// "applied" and the application date set to now.
func (s *ApplicationService) Create(userID uuid.UUID, req *dtos.CreateApplicationRequest) (*models.Application, error) {
	app := &models.Application{
		UserID:    userID,
		Company:   strings.TrimSpace(req.Company),
		Role:      strings.TrimSpace(req.Role),
		Link:      req.Link,
		Notes:     req.Notes,
		Status:    models.StatusApplied,
		AppliedAt: time.Now(),
	}
	if err := s.DB.Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateStatus changes the status of an owned application. A record owned by
// someone else is reported exactly like a missing one.
func (s *ApplicationService) UpdateStatus(userID, id uuid.UUID, status string) (*models.Application, error) {
	res := s.DB.Model(&models.Application{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var app models.Application
	if err := s.DB.First(&app, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Delete removes an owned application; non-owned looks like missing.
func (s *ApplicationService) Delete(userID, id uuid.UUID) error {
	res := s.DB.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
