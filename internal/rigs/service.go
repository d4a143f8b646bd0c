package rigs

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/db"
	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
)

// Service defines the rig registry operations.
type Service interface {
	List(ctx context.Context) ([]RigRow, error)
	Create(ctx context.Context, input CreateRigInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateRigInput) error
}

type service struct {
	repo Repository
}

// NewService wires the rig registry dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "rigs repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]RigRow, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rigs")
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, input CreateRigInput) (uuid.UUID, error) {
	code := strings.TrimSpace(input.RigCode)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "rig code and name are required")
	}

	status := input.Status
	if status == "" {
		status = enums.RigStatusActive
	}
	if !status.IsValid() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid rig status")
	}

	rig := &models.Rig{
		RigCode:       code,
		Name:          name,
		Type:          input.Type,
		CompanyID:     input.CompanyID,
		Location:      input.Location,
		DepthCapacity: input.DepthCapacity,
		Status:        status,
	}
	if err := s.repo.Insert(ctx, rig); err != nil {
		if db.IsUniqueViolation(err, "") {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeConflict, "rig code already exists")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert rig")
	}
	return rig.ID, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch UpdateRigInput) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "rig id required")
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid rig status")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "rig not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rig")
	}

	fields := map[string]any{}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		fields["type"] = *patch.Type
	}
	if patch.CompanyID != nil {
		fields["company_id"] = *patch.CompanyID
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.DepthCapacity != nil {
		fields["depth_capacity"] = *patch.DepthCapacity
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rig")
	}
	return nil
}
