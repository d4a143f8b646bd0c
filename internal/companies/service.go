package companies

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

// Service defines the counterparty registry operations.
type Service interface {
	List(ctx context.Context) ([]CompanyRow, error)
	Create(ctx context.Context, input CreateCompanyInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateCompanyInput) error
}

type service struct {
	repo Repository
}

// NewService wires the company registry dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "companies repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]CompanyRow, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list companies")
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, input CreateCompanyInput) (uuid.UUID, error) {
	code := strings.TrimSpace(input.CompanyCode)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "company code and name are required")
	}

	status := input.Status
	if status == "" {
		status = enums.CompanyStatusActive
	}
	if !status.IsValid() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid company status")
	}

	company := &models.Company{
		CompanyCode:  code,
		Name:         name,
		Type:         input.Type,
		Country:      input.Country,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Status:       status,
	}
	if err := s.repo.Insert(ctx, company); err != nil {
		if db.IsUniqueViolation(err, "") {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeConflict, "company code already exists")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert company")
	}
	return company.ID, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch UpdateCompanyInput) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "company id required")
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid company status")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company")
	}

	fields := map[string]any{}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		fields["type"] = *patch.Type
	}
	if patch.Country != nil {
		fields["country"] = *patch.Country
	}
	if patch.ContactName != nil {
		fields["contact_name"] = *patch.ContactName
	}
	if patch.ContactEmail != nil {
		fields["contact_email"] = *patch.ContactEmail
	}
	if patch.ContactPhone != nil {
		fields["contact_phone"] = *patch.ContactPhone
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update company")
	}
	return nil
}
