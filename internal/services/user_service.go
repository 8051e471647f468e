package services

import (
	"errors"
	"strings"

	"github.com/ghostlake/jobtrack/internal/models"
	"github.com/ghostlake/jobtrack/internal/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB     *gorm.DB
	Tokens *token.Manager
}

func NewUserService(db *gorm.DB, tokens *token.Manager) *UserService {
	return &UserService{DB: db, Tokens: tokens}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
	}
	if err := s.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the password and issues a fresh credential.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(email, password string) (string, error) {
	var user models.User
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrBadCredentials
	}

	return s.Tokens.Issue(user.ID.String(), s.Tokens.TTL())
}

// GetByID loads a user by subject id.
func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
