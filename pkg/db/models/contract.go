package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// Contract represents a service agreement binding assets to a company and rig.
type Contract struct {
	ID         uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ContractNo string               `gorm:"column:contract_no;not null;uniqueIndex"`
	CompanyID  *uuid.UUID           `gorm:"column:company_id;type:uuid"`
	Company    *Company             `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
	RigID      *uuid.UUID           `gorm:"column:rig_id;type:uuid"`
	Rig        *Rig                 `gorm:"foreignKey:RigID;constraint:OnDelete:SET NULL"`
	StartDate  time.Time            `gorm:"column:start_date;type:date;not null"`
	EndDate    time.Time            `gorm:"column:end_date;type:date;not null"`
	ValueUSD   decimal.Decimal      `gorm:"column:value_usd;type:numeric(18,2);not null;default:0"`
	Status     enums.ContractStatus `gorm:"column:status;not null;default:Pending"`
	Notes      *string              `gorm:"column:notes"`
	CreatedBy  *uuid.UUID           `gorm:"column:created_by;type:uuid"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
