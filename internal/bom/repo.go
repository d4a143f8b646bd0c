package bom

import (
	"context"

	"github.com/google/uuid"
	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for BOM components.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListByAsset(ctx context.Context, assetID uuid.UUID) ([]ItemRow, error)
	ListFlat(ctx context.Context, filter FlatFilter) ([]FlatRow, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.BOMItem, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*FlatRow, error)
	Insert(ctx context.Context, item *models.BOMItem) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a BOM repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]ItemRow, error) {
	var rows []ItemRow
	err := r.db.WithContext(ctx).
		Table("bom_items AS b").
		Select("b.*, u.name AS created_by_name").
		Joins("LEFT JOIN users u ON b.created_by = u.id").
		Where("b.asset_id = ?", assetID).
		Order("b.created_at, b.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) ListFlat(ctx context.Context, filter FlatFilter) ([]FlatRow, error) {
	query := r.db.WithContext(ctx).
		Table("bom_items AS b").
		Select("b.*, a.asset_no, a.name AS asset_name, u.name AS created_by_name").
		Joins("JOIN assets a ON b.asset_id = a.id").
		Joins("LEFT JOIN users u ON b.created_by = u.id")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("b.name ILIKE ? OR b.part_no ILIKE ?", pattern, pattern)
	}
	if filter.Type != "" {
		query = query.Where("b.item_type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("b.status = ?", filter.Status)
	}

	var rows []FlatRow
	if err := query.Order("a.asset_no, b.created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.BOMItem, error) {
	var item models.BOMItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) GetDetail(ctx context.Context, id uuid.UUID) (*FlatRow, error) {
	var row FlatRow
	err := r.db.WithContext(ctx).
		Table("bom_items AS b").
		Select("b.*, a.asset_no, a.name AS asset_name, u.name AS created_by_name").
		Joins("JOIN assets a ON b.asset_id = a.id").
		Joins("LEFT JOIN users u ON b.created_by = u.id").
		Where("b.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repositoryImpl) Insert(ctx context.Context, item *models.BOMItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.BOMItem{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repositoryImpl) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.BOMItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
