package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for the asset history trail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, entry *models.AssetHistory) error
	ListByAsset(ctx context.Context, assetID uuid.UUID, limit int) ([]HistoryRow, error)
}

// HistoryRow is a history entry joined with the performing user's name.
type HistoryRow struct {
	ID            uuid.UUID  `gorm:"column:id" json:"id"`
	AssetID       uuid.UUID  `gorm:"column:asset_id" json:"asset_id"`
	Action        string     `gorm:"column:action" json:"action"`
	FieldName     *string    `gorm:"column:field_name" json:"field_name"`
	OldValue      *string    `gorm:"column:old_value" json:"old_value"`
	NewValue      *string    `gorm:"column:new_value" json:"new_value"`
	Notes         *string    `gorm:"column:notes" json:"notes"`
	PerformedBy   *uuid.UUID `gorm:"column:performed_by" json:"performed_by"`
	PerformedAt   time.Time  `gorm:"column:performed_at" json:"performed_at"`
	PerformerName *string    `gorm:"column:performer_name" json:"performer_name"`
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a history repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Insert(ctx context.Context, entry *models.AssetHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repositoryImpl) ListByAsset(ctx context.Context, assetID uuid.UUID, limit int) ([]HistoryRow, error) {
	var rows []HistoryRow
	err := r.db.WithContext(ctx).
		Table("asset_history AS ah").
		Select("ah.*, u.name AS performer_name").
		Joins("LEFT JOIN users u ON ah.performed_by = u.id").
		Where("ah.asset_id = ?", assetID).
		Order("ah.performed_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
