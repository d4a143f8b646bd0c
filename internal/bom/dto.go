package bom

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// CreateItemInput carries the fields accepted when registering a component.
type CreateItemInput struct {
	AssetID      uuid.UUID
	ParentID     *uuid.UUID
	Name         string
	PartNo       *string
	ItemType     enums.BOMItemType
	SerialNumber *string
	Manufacturer *string
	Quantity     *decimal.Decimal
	UOM          string
	UnitCostUSD  *decimal.Decimal
	LeadTimeDays *int
	Status       enums.BOMItemStatus
	Notes        *string
	CreatedBy    *uuid.UUID
}

// UpdateItemInput is a partial patch; nil fields are left untouched.
type UpdateItemInput struct {
	Name         *string
	PartNo       *string
	ItemType     *enums.BOMItemType
	SerialNumber *string
	Manufacturer *string
	Quantity     *decimal.Decimal
	UOM          *string
	UnitCostUSD  *decimal.Decimal
	LeadTimeDays *int
	Status       *enums.BOMItemStatus
	Notes        *string
	ParentID     *uuid.UUID
}

// ItemRow is a component row joined with its creator's name.
type ItemRow struct {
	ID            uuid.UUID           `gorm:"column:id" json:"id"`
	AssetID       uuid.UUID           `gorm:"column:asset_id" json:"asset_id"`
	ParentID      *uuid.UUID          `gorm:"column:parent_id" json:"parent_id"`
	Name          string              `gorm:"column:name" json:"name"`
	PartNo        *string             `gorm:"column:part_no" json:"part_no"`
	ItemType      enums.BOMItemType   `gorm:"column:item_type" json:"item_type"`
	SerialNumber  *string             `gorm:"column:serial_number" json:"serial_number"`
	Manufacturer  *string             `gorm:"column:manufacturer" json:"manufacturer"`
	Quantity      decimal.Decimal     `gorm:"column:quantity" json:"quantity"`
	UOM           string              `gorm:"column:uom" json:"uom"`
	UnitCostUSD   decimal.Decimal     `gorm:"column:unit_cost_usd" json:"unit_cost_usd"`
	LeadTimeDays  int                 `gorm:"column:lead_time_days" json:"lead_time_days"`
	Status        enums.BOMItemStatus `gorm:"column:status" json:"status"`
	Notes         *string             `gorm:"column:notes" json:"notes"`
	CreatedBy     *uuid.UUID          `gorm:"column:created_by" json:"created_by"`
	CreatedByName *string             `gorm:"column:created_by_name" json:"created_by_name"`
	CreatedAt     time.Time           `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at" json:"updated_at"`
}

// TreeNode is an ItemRow annotated with its position in the hierarchy.
type TreeNode struct {
	ItemRow
	Depth int    `json:"depth"`
	Path  string `json:"path"`
}

// TreeSummary aggregates counts and cost across a component tree.
type TreeSummary struct {
	Total      int             `json:"total"`
	Serialized int             `json:"serialized"`
	Bulk       int             `json:"bulk"`
	TotalCost  decimal.Decimal `json:"totalCost"`
}

// TreeResult bundles the ordered tree with its summary.
type TreeResult struct {
	Items   []TreeNode  `json:"items"`
	Summary TreeSummary `json:"summary"`
}

// FlatFilter narrows the cross-asset component listing.
type FlatFilter struct {
	Search string
	Type   string
	Status string
}

// FlatRow is a component row joined with its asset identity, used by the
// cross-asset listing and the Excel export.
type FlatRow struct {
	ItemRow
	AssetNo   string `gorm:"column:asset_no" json:"asset_no"`
	AssetName string `gorm:"column:asset_name" json:"asset_name"`
}
