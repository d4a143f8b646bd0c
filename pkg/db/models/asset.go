package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// Asset represents a tracked piece of drilling equipment.
type Asset struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AssetNo         string            `gorm:"column:asset_no;not null;uniqueIndex"`
	Name            string            `gorm:"column:name;not null"`
	Category        *string           `gorm:"column:category"`
	SerialNumber    *string           `gorm:"column:serial_number"`
	Status          enums.AssetStatus `gorm:"column:status;not null;default:Active"`
	CompanyID       *uuid.UUID        `gorm:"column:company_id;type:uuid"`
	Company         *Company          `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
	RigID           *uuid.UUID        `gorm:"column:rig_id;type:uuid"`
	Rig             *Rig              `gorm:"foreignKey:RigID;constraint:OnDelete:SET NULL"`
	ContractID      *uuid.UUID        `gorm:"column:contract_id;type:uuid"`
	Contract        *Contract         `gorm:"foreignKey:ContractID;constraint:OnDelete:SET NULL"`
	Location        *string           `gorm:"column:location"`
	ValueUSD        decimal.Decimal   `gorm:"column:value_usd;type:numeric(18,2);not null;default:0"`
	AcquisitionDate *time.Time        `gorm:"column:acquisition_date;type:date"`
	Notes           *string           `gorm:"column:notes"`
	CreatedBy       *uuid.UUID        `gorm:"column:created_by;type:uuid"`
	BOMItems        []BOMItem         `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
