package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// UserDTO is the transport shape that omits the password hash.
type UserDTO struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Role       enums.UserRole `json:"role"`
	Department *string        `json:"department,omitempty"`
	IsActive   bool           `json:"is_active"`
	LastLogin  *time.Time     `json:"last_login,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// CreateUserInput carries the fields accepted when provisioning an account.
type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	Role       enums.UserRole
	Department *string
}

// UpdateUserInput is a partial patch; nil fields are left untouched.
type UpdateUserInput struct {
	Name       *string
	Role       *enums.UserRole
	Department *string
	IsActive   *bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		IsActive:   u.IsActive,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
