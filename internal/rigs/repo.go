package rigs

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
)

// Repository exposes persistence helpers for rigs.
type Repository interface {
	List(ctx context.Context) ([]RigRow, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rig, error)
	Insert(ctx context.Context, rig *models.Rig) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a rig repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) List(ctx context.Context) ([]RigRow, error) {
	var rows []RigRow
	err := r.db.WithContext(ctx).
		Table("rigs AS r").
		Select(`r.*, c.name AS company_name, (
			SELECT COUNT(*) FROM assets a WHERE a.rig_id = r.id
		) AS asset_count`).
		Joins("LEFT JOIN companies c ON r.company_id = c.id").
		Order("r.name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Rig, error) {
	var rig models.Rig
	if err := r.db.WithContext(ctx).First(&rig, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rig, nil
}

func (r *repositoryImpl) Insert(ctx context.Context, rig *models.Rig) error {
	return r.db.WithContext(ctx).Create(rig).Error
}

func (r *repositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Rig{}).
		Where("id = ?", id).
		Updates(fields).Error
}
