package contracts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
)

// Repository exposes persistence helpers for contracts.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]ContractRow, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	Insert(ctx context.Context, contract *models.Contract) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a contract repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) List(ctx context.Context, filter ListFilter) ([]ContractRow, error) {
	query := r.db.WithContext(ctx).
		Table("contracts AS k").
		Select(`k.*, c.name AS company_name, r.name AS rig_name, (
			SELECT COUNT(*) FROM assets a WHERE a.contract_id = k.id
		) AS asset_count`).
		Joins("LEFT JOIN companies c ON k.company_id = c.id").
		Joins("LEFT JOIN rigs r ON k.rig_id = r.id")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("k.contract_no ILIKE ? OR c.name ILIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("k.status = ?", filter.Status)
	}

	var rows []ContractRow
	if err := query.Order("k.created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	if err := r.db.WithContext(ctx).First(&contract, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *repositoryImpl) Insert(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *repositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Contract{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
