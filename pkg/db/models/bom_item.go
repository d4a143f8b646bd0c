package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// BOMItem represents one component in an asset's bill of materials. Items
// nest via ParentID to form a tree rooted at the asset.
type BOMItem struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AssetID      uuid.UUID           `gorm:"column:asset_id;type:uuid;not null;index"`
	ParentID     *uuid.UUID          `gorm:"column:parent_id;type:uuid;index"`
	Name         string              `gorm:"column:name;not null"`
	PartNo       *string             `gorm:"column:part_no"`
	ItemType     enums.BOMItemType   `gorm:"column:item_type;not null;default:Serialized"`
	SerialNumber *string             `gorm:"column:serial_number"`
	Manufacturer *string             `gorm:"column:manufacturer"`
	Quantity     decimal.Decimal     `gorm:"column:quantity;type:numeric(12,3);not null;default:1"`
	UOM          string              `gorm:"column:uom;not null;default:EA"`
	UnitCostUSD  decimal.Decimal     `gorm:"column:unit_cost_usd;type:numeric(18,2);default:0"`
	LeadTimeDays int                 `gorm:"column:lead_time_days;default:0"`
	Status       enums.BOMItemStatus `gorm:"column:status;not null;default:Active"`
	Notes        *string             `gorm:"column:notes"`
	CreatedBy    *uuid.UUID          `gorm:"column:created_by;type:uuid"`
	Children     []BOMItem           `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table since GORM would otherwise mangle the acronym.
func (BOMItem) TableName() string {
	return "bom_items"
}
