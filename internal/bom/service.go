package bom

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the component hierarchy operations.
type Service interface {
	Tree(ctx context.Context, assetID uuid.UUID) (*TreeResult, error)
	List(ctx context.Context, filter FlatFilter) ([]FlatRow, error)
	Get(ctx context.Context, id uuid.UUID) (*FlatRow, error)
	Create(ctx context.Context, input CreateItemInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateItemInput) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Summarize(ctx context.Context, assetID uuid.UUID) (*TreeSummary, error)
	ExportExcel(ctx context.Context, filter FlatFilter) ([]byte, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService wires the BOM dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "bom repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Tree(ctx context.Context, assetID uuid.UUID) (*TreeResult, error) {
	if assetID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asset id required")
	}

	items, err := s.repo.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bom items")
	}

	ordered := orderTree(items)
	return &TreeResult{Items: ordered, Summary: summarize(items)}, nil
}

func (s *service) List(ctx context.Context, filter FlatFilter) ([]FlatRow, error) {
	rows, err := s.repo.ListFlat(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bom items")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*FlatRow, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bom item id required")
	}

	row, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bom item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bom item")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input CreateItemInput) (uuid.UUID, error) {
	if input.AssetID == uuid.Nil || input.Name == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "asset id and name are required")
	}

	itemType := input.ItemType
	if itemType == "" {
		itemType = enums.BOMItemTypeSerialized
	}
	if !itemType.IsValid() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item type")
	}

	status := input.Status
	if status == "" {
		status = enums.BOMItemStatusActive
	}
	if !status.IsValid() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item status")
	}

	if input.ParentID != nil {
		if err := s.checkParent(ctx, s.repo, input.AssetID, *input.ParentID); err != nil {
			return uuid.Nil, err
		}
	}

	// Bulk items never carry serials, whatever the caller sent.
	serial := input.SerialNumber
	if itemType == enums.BOMItemTypeBulk {
		serial = nil
	}

	quantity := decimal.NewFromInt(1)
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity.IsNegative() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	unitCost := decimal.Zero
	if input.UnitCostUSD != nil {
		unitCost = *input.UnitCostUSD
	}

	uom := input.UOM
	if uom == "" {
		uom = "EA"
	}

	leadTime := 0
	if input.LeadTimeDays != nil {
		leadTime = *input.LeadTimeDays
	}

	item := &models.BOMItem{
		AssetID:      input.AssetID,
		ParentID:     input.ParentID,
		Name:         input.Name,
		PartNo:       input.PartNo,
		ItemType:     itemType,
		SerialNumber: serial,
		Manufacturer: input.Manufacturer,
		Quantity:     quantity,
		UOM:          uom,
		UnitCostUSD:  unitCost,
		LeadTimeDays: leadTime,
		Status:       status,
		Notes:        input.Notes,
		CreatedBy:    input.CreatedBy,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert bom item")
	}
	return item.ID, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch UpdateItemInput) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "bom item id required")
	}
	if patch.ItemType != nil && !patch.ItemType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid item type")
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid item status")
	}
	if patch.Quantity != nil && patch.Quantity.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "bom item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bom item")
	}

	if patch.ParentID != nil {
		if *patch.ParentID == id {
			return pkgerrors.New(pkgerrors.CodeConflict, "item cannot be its own parent")
		}
		if err := s.checkParent(ctx, s.repo, existing.AssetID, *patch.ParentID); err != nil {
			return err
		}
	}

	turnsBulk := patch.ItemType != nil && *patch.ItemType == enums.BOMItemTypeBulk &&
		existing.ItemType != enums.BOMItemTypeBulk
	if patch.ParentID != nil || turnsBulk {
		siblings, err := s.repo.ListByAsset(ctx, existing.AssetID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load asset bom items")
		}
		subtree := subtreeIDs(siblings, id)
		if turnsBulk && len(subtree) > 1 {
			return pkgerrors.New(pkgerrors.CodeConflict, "cannot change an item with children to Bulk")
		}
		if patch.ParentID != nil {
			for _, sid := range subtree {
				if sid == *patch.ParentID {
					return pkgerrors.New(pkgerrors.CodeConflict, "cannot move an item under its own descendant")
				}
			}
		}
	}

	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.PartNo != nil {
		fields["part_no"] = *patch.PartNo
	}
	if patch.ItemType != nil {
		fields["item_type"] = *patch.ItemType
	}
	if patch.Manufacturer != nil {
		fields["manufacturer"] = *patch.Manufacturer
	}
	if patch.Quantity != nil {
		fields["quantity"] = *patch.Quantity
	}
	if patch.UOM != nil {
		fields["uom"] = *patch.UOM
	}
	if patch.UnitCostUSD != nil {
		fields["unit_cost_usd"] = *patch.UnitCostUSD
	}
	if patch.LeadTimeDays != nil {
		fields["lead_time_days"] = *patch.LeadTimeDays
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
	}
	if patch.ParentID != nil {
		fields["parent_id"] = *patch.ParentID
	}

	// Re-derive the Bulk/serial constraint against the effective type.
	effectiveType := existing.ItemType
	if patch.ItemType != nil {
		effectiveType = *patch.ItemType
	}
	switch {
	case effectiveType == enums.BOMItemTypeBulk:
		fields["serial_number"] = nil
	case patch.SerialNumber != nil:
		fields["serial_number"] = *patch.SerialNumber
	}

	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update bom item")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "bom item id required")
	}

	var deleted int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "bom item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bom item")
		}

		siblings, err := repo.ListByAsset(ctx, item.AssetID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load asset bom items")
		}

		ids := subtreeIDs(siblings, id)
		count, err := repo.DeleteByIDs(ctx, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete bom subtree")
		}
		deleted = count
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *service) Summarize(ctx context.Context, assetID uuid.UUID) (*TreeSummary, error) {
	if assetID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asset id required")
	}

	items, err := s.repo.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bom items")
	}
	summary := summarize(items)
	return &summary, nil
}

func (s *service) checkParent(ctx context.Context, repo Repository, assetID, parentID uuid.UUID) error {
	parent, err := repo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "parent bom item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent bom item")
	}
	if parent.ItemType == enums.BOMItemTypeBulk {
		return pkgerrors.New(pkgerrors.CodeConflict, "cannot add children under a Bulk item")
	}
	if parent.AssetID != assetID {
		return pkgerrors.New(pkgerrors.CodeConflict, "parent belongs to a different asset")
	}
	return nil
}
