package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/config"
	"github.com/rigtrack/rigtrack-backend/pkg/db"
	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"github.com/rigtrack/rigtrack-backend/pkg/security"
)

const minPasswordLength = 8

// Service defines the operator account operations.
type Service interface {
	List(ctx context.Context) ([]UserDTO, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateUserInput) error
	Deactivate(ctx context.Context, id, actorID uuid.UUID) error
}

type service struct {
	repo        Repository
	passwordCfg config.PasswordConfig
}

// NewService wires the user management dependencies.
func NewService(repo Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	dtos := make([]UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and password are required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	role := input.Role
	if role == "" {
		role = enums.UserRoleViewer
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Department:   input.Department,
		IsActive:     true,
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch UpdateUserInput) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if patch.Role != nil && !patch.Role.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	fields := map[string]any{}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Role != nil {
		fields["role"] = *patch.Role
	}
	if patch.Department != nil {
		fields["department"] = *patch.Department
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return nil
}

// Deactivate disables an account instead of removing the row, so history
// rows keep their author.
func (s *service) Deactivate(ctx context.Context, id, actorID uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if id == actorID {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot deactivate your own account")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if err := s.repo.UpdateFields(ctx, id, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate user")
	}
	return nil
}
