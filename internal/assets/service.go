package assets

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/internal/audit"
	"github.com/rigtrack/rigtrack-backend/pkg/db"
	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"github.com/rigtrack/rigtrack-backend/pkg/pagination"
)

const dateLayout = "2006-01-02"

// mutableFields lists the asset columns a partial update may touch, in the
// order their deltas are audited.
var mutableFields = []string{
	"name", "category", "serial_number", "status", "company_id", "rig_id",
	"contract_id", "location", "value_usd", "acquisition_date", "notes",
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the asset catalog operations.
type Service interface {
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*AssetDetail, error)
	Create(ctx context.Context, input CreateAssetInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateAssetInput, performedBy *uuid.UUID) (*UpdateResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context) (*CatalogSummary, error)
	ExportExcel(ctx context.Context) ([]byte, error)
	ImportExcel(ctx context.Context, file io.Reader, createdBy *uuid.UUID) (*ImportResult, error)
}

type service struct {
	repo     Repository
	recorder *audit.Recorder
	tx       txRunner
}

// NewService wires the asset catalog dependencies.
func NewService(repo Repository, recorder *audit.Recorder, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "assets repository required")
	}
	if recorder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit recorder required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{repo: repo, recorder: recorder, tx: tx}, nil
}

func (s *service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	params := pagination.Normalize(opts.Page, opts.Limit)

	rows, total, err := s.repo.List(ctx, opts, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assets")
	}

	return &ListResult{
		Rows:       rows,
		Pagination: pagination.NewMeta(params, total),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*AssetDetail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asset id required")
	}

	row, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load asset")
	}

	history, err := s.recorder.History(ctx, id)
	if err != nil {
		return nil, err
	}

	return &AssetDetail{AssetRow: *row, History: history}, nil
}

func (s *service) Create(ctx context.Context, input CreateAssetInput) (uuid.UUID, error) {
	if input.AssetNo == "" || input.Name == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "asset number and name are required")
	}

	status := input.Status
	if status == "" {
		status = enums.AssetStatusActive
	}
	if !status.IsValid() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid asset status")
	}

	value := decimal.Zero
	if input.ValueUSD != nil {
		value = *input.ValueUSD
	}

	asset := &models.Asset{
		AssetNo:         input.AssetNo,
		Name:            input.Name,
		Category:        input.Category,
		SerialNumber:    input.SerialNumber,
		Status:          status,
		CompanyID:       input.CompanyID,
		RigID:           input.RigID,
		ContractID:      input.ContractID,
		Location:        input.Location,
		ValueUSD:        value,
		AcquisitionDate: input.AcquisitionDate,
		Notes:           input.Notes,
		CreatedBy:       input.CreatedBy,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Insert(ctx, asset); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "asset number already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert asset")
		}
		return s.recorder.RecordCreation(ctx, tx, asset.ID, input.CreatedBy)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return asset.ID, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch UpdateAssetInput, performedBy *uuid.UUID) (*UpdateResult, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asset id required")
	}

	proposed := patchValues(patch)
	if err := validatePatch(proposed); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetRaw(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load asset")
	}

	deltas := audit.Diff(mutableFields, snapshot(existing), proposed)
	if len(deltas) == 0 {
		return &UpdateResult{Changed: 0}, nil
	}

	fields := make(map[string]any, len(deltas))
	changed := make([]string, 0, len(deltas))
	for _, delta := range deltas {
		value, err := columnValue(delta.Field, delta.New)
		if err != nil {
			return nil, err
		}
		fields[delta.Field] = value
		changed = append(changed, delta.Field)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateFields(ctx, id, fields); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update asset")
		}
		return s.recorder.RecordDeltas(ctx, tx, id, deltas, performedBy)
	})
	if err != nil {
		return nil, err
	}

	return &UpdateResult{Changed: len(deltas), Fields: changed}, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "asset id required")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete asset")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
	}
	return nil
}

func (s *service) Summary(ctx context.Context) (*CatalogSummary, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summarize assets")
	}
	return summary, nil
}

// snapshot renders the mutable columns of an asset as wire strings so they
// compare one-to-one with patch values.
func snapshot(asset *models.Asset) map[string]*string {
	status := string(asset.Status)
	value := asset.ValueUSD.String()

	snap := map[string]*string{
		"name":          &asset.Name,
		"category":      asset.Category,
		"serial_number": asset.SerialNumber,
		"status":        &status,
		"company_id":    uuidString(asset.CompanyID),
		"rig_id":        uuidString(asset.RigID),
		"contract_id":   uuidString(asset.ContractID),
		"location":      asset.Location,
		"value_usd":     &value,
		"notes":         asset.Notes,
	}
	if asset.AcquisitionDate != nil {
		date := asset.AcquisitionDate.Format(dateLayout)
		snap["acquisition_date"] = &date
	} else {
		snap["acquisition_date"] = nil
	}
	return snap
}

func patchValues(patch UpdateAssetInput) map[string]*string {
	values := map[string]*string{}
	set := func(field string, value *string) {
		if value != nil {
			values[field] = value
		}
	}
	set("name", patch.Name)
	set("category", patch.Category)
	set("serial_number", patch.SerialNumber)
	set("status", patch.Status)
	set("company_id", patch.CompanyID)
	set("rig_id", patch.RigID)
	set("contract_id", patch.ContractID)
	set("location", patch.Location)
	set("value_usd", patch.ValueUSD)
	set("acquisition_date", patch.AcquisitionDate)
	set("notes", patch.Notes)
	return values
}

func validatePatch(proposed map[string]*string) error {
	if value, ok := proposed["name"]; ok && *value == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be cleared")
	}
	if value, ok := proposed["status"]; ok && *value != "" {
		if _, err := enums.ParseAssetStatus(*value); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid asset status")
		}
	}
	if value, ok := proposed["value_usd"]; ok && *value != "" {
		if _, err := decimal.NewFromString(*value); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid asset value")
		}
	}
	if value, ok := proposed["acquisition_date"]; ok && *value != "" {
		if _, err := time.Parse(dateLayout, *value); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid acquisition date, expected YYYY-MM-DD")
		}
	}
	for _, field := range []string{"company_id", "rig_id", "contract_id"} {
		if value, ok := proposed[field]; ok && *value != "" {
			if _, err := uuid.Parse(*value); err != nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "invalid "+field)
			}
		}
	}
	return nil
}

// columnValue converts a normalized delta value into the typed column
// value written to the store. Values were validated before diffing, so
// parse failures here are internal errors.
func columnValue(field string, value *string) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch field {
	case "status":
		status, err := enums.ParseAssetStatus(*value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "convert status")
		}
		return status, nil
	case "value_usd":
		parsed, err := decimal.NewFromString(*value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "convert value")
		}
		return parsed, nil
	case "acquisition_date":
		parsed, err := time.Parse(dateLayout, *value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "convert date")
		}
		return parsed, nil
	case "company_id", "rig_id", "contract_id":
		parsed, err := uuid.Parse(*value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "convert "+field)
		}
		return parsed, nil
	default:
		return *value, nil
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	value := id.String()
	return &value
}
