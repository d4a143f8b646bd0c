package assets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rigtrack/rigtrack-backend/internal/audit"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	"github.com/rigtrack/rigtrack-backend/pkg/pagination"
)

// AssetRow is an asset joined with the names of its linked records.
type AssetRow struct {
	ID              uuid.UUID         `gorm:"column:id" json:"id"`
	AssetNo         string            `gorm:"column:asset_no" json:"asset_no"`
	Name            string            `gorm:"column:name" json:"name"`
	Category        *string           `gorm:"column:category" json:"category"`
	SerialNumber    *string           `gorm:"column:serial_number" json:"serial_number"`
	Status          enums.AssetStatus `gorm:"column:status" json:"status"`
	Location        *string           `gorm:"column:location" json:"location"`
	ValueUSD        decimal.Decimal   `gorm:"column:value_usd" json:"value_usd"`
	AcquisitionDate *time.Time        `gorm:"column:acquisition_date" json:"acquisition_date"`
	Notes           *string           `gorm:"column:notes" json:"notes"`
	CreatedAt       time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at" json:"updated_at"`
	CompanyID       *uuid.UUID        `gorm:"column:company_id" json:"company_id"`
	CompanyName     *string           `gorm:"column:company_name" json:"company_name"`
	RigID           *uuid.UUID        `gorm:"column:rig_id" json:"rig_id"`
	RigName         *string           `gorm:"column:rig_name" json:"rig_name"`
	ContractID      *uuid.UUID        `gorm:"column:contract_id" json:"contract_id"`
	ContractNo      *string           `gorm:"column:contract_no" json:"contract_no"`
	CreatedByName   *string           `gorm:"column:created_by_name" json:"created_by_name"`
}

// AssetDetail bundles one asset with its recent history trail.
type AssetDetail struct {
	AssetRow
	History []audit.HistoryRow `json:"history"`
}

// ListOptions configures the catalog search.
type ListOptions struct {
	Search    string
	Status    string
	Category  string
	CompanyID *uuid.UUID
	RigID     *uuid.UUID
	Sort      string
	Order     string
	Page      int
	Limit     int
}

// ListResult carries one catalog page plus the pagination metadata.
type ListResult struct {
	Rows       []AssetRow      `json:"rows"`
	Pagination pagination.Meta `json:"pagination"`
}

// CreateAssetInput carries the fields accepted when registering an asset.
type CreateAssetInput struct {
	AssetNo         string
	Name            string
	Category        *string
	SerialNumber    *string
	Status          enums.AssetStatus
	CompanyID       *uuid.UUID
	RigID           *uuid.UUID
	ContractID      *uuid.UUID
	Location        *string
	ValueUSD        *decimal.Decimal
	AcquisitionDate *time.Time
	Notes           *string
	CreatedBy       *uuid.UUID
}

// UpdateAssetInput is a wire-value patch: every field is its raw string
// form, nil means "not supplied" and empty string means "clear". Keeping
// the patch stringly typed matches how deltas are compared and audited.
type UpdateAssetInput struct {
	Name            *string
	Category        *string
	SerialNumber    *string
	Status          *string
	CompanyID       *string
	RigID           *string
	ContractID      *string
	Location        *string
	ValueUSD        *string
	AcquisitionDate *string
	Notes           *string
}

// UpdateResult reports how many fields actually changed.
type UpdateResult struct {
	Changed int      `json:"changed"`
	Fields  []string `json:"fields"`
}

// StatusCount is one row of the per-status aggregate.
type StatusCount struct {
	Status string `gorm:"column:status" json:"status"`
	Count  int64  `gorm:"column:count" json:"count"`
}

// CategoryCount is one row of the per-category aggregate.
type CategoryCount struct {
	Category *string `gorm:"column:category" json:"category"`
	Count    int64   `gorm:"column:count" json:"count"`
}

// CatalogSummary aggregates the whole asset catalog.
type CatalogSummary struct {
	Total      int64           `json:"total"`
	TotalValue decimal.Decimal `json:"totalValue"`
	ByStatus   []StatusCount   `json:"byStatus"`
	ByCategory []CategoryCount `json:"byCategory"`
}

// ImportRow is one parsed spreadsheet line for the bulk import.
type ImportRow struct {
	AssetNo         string
	Name            string
	Category        *string
	SerialNumber    *string
	Status          string
	Location        *string
	ValueUSD        decimal.Decimal
	AcquisitionDate *time.Time
	Notes           *string
}

// ImportResult summarizes a completed bulk import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}
