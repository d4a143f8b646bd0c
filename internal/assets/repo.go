package assets

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/pagination"
)

const listSelect = `a.id, a.asset_no, a.name, a.category, a.serial_number, a.status,
a.location, a.value_usd, a.acquisition_date, a.notes, a.created_at, a.updated_at,
c.id AS company_id, c.name AS company_name,
r.id AS rig_id, r.name AS rig_name,
k.id AS contract_id, k.contract_no,
u.name AS created_by_name`

// sortColumns is the allow-list of caller-selectable sort keys. Anything
// else silently falls back to creation time.
var sortColumns = map[string]string{
	"a.asset_no":   "a.asset_no",
	"a.name":       "a.name",
	"a.category":   "a.category",
	"a.status":     "a.status",
	"a.value_usd":  "a.value_usd",
	"a.created_at": "a.created_at",
	"c.name":       "c.name",
	"r.name":       "r.name",
}

const defaultSortColumn = "a.created_at"

// Repository exposes persistence helpers for the asset catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, asset *models.Asset) error
	GetRaw(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*AssetRow, error)
	List(ctx context.Context, opts ListOptions, params pagination.Params) ([]AssetRow, int64, error)
	ListAll(ctx context.Context) ([]AssetRow, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Summary(ctx context.Context) (*CatalogSummary, error)
	UpsertImport(ctx context.Context, row ImportRow, createdBy *uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an asset repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("assets AS a").
		Select(listSelect).
		Joins("LEFT JOIN companies c ON a.company_id = c.id").
		Joins("LEFT JOIN rigs r ON a.rig_id = r.id").
		Joins("LEFT JOIN contracts k ON a.contract_id = k.id").
		Joins("LEFT JOIN users u ON a.created_by = u.id")
}

func applyFilters(query *gorm.DB, opts ListOptions) *gorm.DB {
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.Where(
			"a.asset_no ILIKE ? OR a.name ILIKE ? OR a.location ILIKE ? OR a.serial_number ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if opts.Status != "" {
		query = query.Where("a.status = ?", opts.Status)
	}
	if opts.Category != "" {
		query = query.Where("a.category = ?", opts.Category)
	}
	if opts.CompanyID != nil {
		query = query.Where("a.company_id = ?", *opts.CompanyID)
	}
	if opts.RigID != nil {
		query = query.Where("a.rig_id = ?", *opts.RigID)
	}
	return query
}

func orderClause(opts ListOptions) string {
	column, ok := sortColumns[opts.Sort]
	if !ok {
		column = defaultSortColumn
	}
	direction := "DESC"
	if opts.Order == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

// List runs the page query and the total count concurrently over the same
// filter predicate.
func (r *repositoryImpl) List(ctx context.Context, opts ListOptions, params pagination.Params) ([]AssetRow, int64, error) {
	var (
		rows  []AssetRow
		total int64
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		query := applyFilters(r.joined(groupCtx), opts)
		return query.
			Order(orderClause(opts)).
			Limit(params.Limit).
			Offset(params.Offset()).
			Find(&rows).Error
	})

	group.Go(func() error {
		query := r.db.WithContext(groupCtx).
			Table("assets AS a").
			Joins("LEFT JOIN companies c ON a.company_id = c.id")
		return applyFilters(query, opts).Count(&total).Error
	})

	if err := group.Wait(); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]AssetRow, error) {
	var rows []AssetRow
	if err := r.joined(ctx).Order("a.asset_no").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) Insert(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *repositoryImpl) GetRaw(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *repositoryImpl) GetDetail(ctx context.Context, id uuid.UUID) (*AssetRow, error) {
	var row AssetRow
	if err := r.joined(ctx).Where("a.id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Asset{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Summary runs the four catalog aggregates concurrently.
func (r *repositoryImpl) Summary(ctx context.Context) (*CatalogSummary, error) {
	summary := &CatalogSummary{TotalValue: decimal.Zero}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return r.db.WithContext(groupCtx).
			Model(&models.Asset{}).
			Count(&summary.Total).Error
	})

	group.Go(func() error {
		var totalValue decimal.NullDecimal
		err := r.db.WithContext(groupCtx).
			Model(&models.Asset{}).
			Select("COALESCE(SUM(value_usd), 0)").
			Scan(&totalValue).Error
		if err != nil {
			return err
		}
		if totalValue.Valid {
			summary.TotalValue = totalValue.Decimal
		}
		return nil
	})

	group.Go(func() error {
		return r.db.WithContext(groupCtx).
			Model(&models.Asset{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Order("count DESC").
			Find(&summary.ByStatus).Error
	})

	group.Go(func() error {
		return r.db.WithContext(groupCtx).
			Model(&models.Asset{}).
			Select("category, COUNT(*) AS count").
			Group("category").
			Order("count DESC").
			Find(&summary.ByCategory).Error
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

// UpsertImport inserts one imported asset, refreshing name and status when
// the asset number already exists.
func (r *repositoryImpl) UpsertImport(ctx context.Context, row ImportRow, createdBy *uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO assets (asset_no, name, category, serial_number, status, location, value_usd, acquisition_date, notes, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (asset_no) DO UPDATE SET name = EXCLUDED.name, status = EXCLUDED.status`,
		row.AssetNo, row.Name, row.Category, row.SerialNumber, row.Status,
		row.Location, row.ValueUSD, row.AcquisitionDate, row.Notes, createdBy,
	).Error
}
