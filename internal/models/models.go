package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application statuses form a fixed set; anything else is rejected at the boundary.
const (
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
)

// ValidStatus reports whether s is one of the allowed application statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Foreign Key: owner of the record. Every query on applications
	// filters by this in addition to the record id.
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	Company   string    `gorm:"not null" json:"company"`
	Role      string    `gorm:"not null" json:"role"`
	Link      string    `json:"link"`
	Notes     string    `gorm:"type:text" json:"notes"`
	Status    string    `gorm:"default:'applied'" json:"status"`
	AppliedAt time.Time `gorm:"index" json:"applied_at"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
