package contracts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/db"
	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
)

// Service defines the contract registry operations.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ContractRow, error)
	Create(ctx context.Context, input CreateContractInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateContractInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires the contract registry dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "contracts repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ContractRow, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contracts")
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, input CreateContractInput) (uuid.UUID, error) {
	contractNo := strings.TrimSpace(input.ContractNo)
	if contractNo == "" || input.StartDate.IsZero() || input.EndDate.IsZero() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "contract number, start date and end date are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}

	status := input.Status
	if status == "" {
		status = enums.ContractStatusPending
	}
	if !status.IsValid() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid contract status")
	}

	value := decimal.Zero
	if input.ValueUSD != nil {
		value = *input.ValueUSD
	}

	contract := &models.Contract{
		ContractNo: contractNo,
		CompanyID:  input.CompanyID,
		RigID:      input.RigID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		ValueUSD:   value,
		Status:     status,
		Notes:      input.Notes,
		CreatedBy:  input.CreatedBy,
	}
	if err := s.repo.Insert(ctx, contract); err != nil {
		if db.IsUniqueViolation(err, "") {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeConflict, "contract number already exists")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert contract")
	}
	return contract.ID, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch UpdateContractInput) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "contract id required")
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid contract status")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract")
	}

	start := existing.StartDate
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	end := existing.EndDate
	if patch.EndDate != nil {
		end = *patch.EndDate
	}
	if end.Before(start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}

	fields := map[string]any{}
	if patch.CompanyID != nil {
		fields["company_id"] = *patch.CompanyID
	}
	if patch.RigID != nil {
		fields["rig_id"] = *patch.RigID
	}
	if patch.StartDate != nil {
		fields["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		fields["end_date"] = *patch.EndDate
	}
	if patch.ValueUSD != nil {
		fields["value_usd"] = *patch.ValueUSD
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contract")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "contract id required")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contract")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
	}
	return nil
}
