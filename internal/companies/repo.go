package companies

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
)

// Repository exposes persistence helpers for counterparties.
type Repository interface {
	List(ctx context.Context) ([]CompanyRow, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Insert(ctx context.Context, company *models.Company) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a company repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) List(ctx context.Context) ([]CompanyRow, error) {
	var rows []CompanyRow
	err := r.db.WithContext(ctx).
		Table("companies AS c").
		Select(`c.*, (
			SELECT COUNT(*) FROM contracts k
			WHERE k.company_id = c.id AND k.status = 'Active'
		) AS active_contracts`).
		Order("c.name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repositoryImpl) Insert(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("id = ?", id).
		Updates(fields).Error
}
