package contracts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// ContractRow is a contract joined with its counterparty names and the
// count of assets assigned to it.
type ContractRow struct {
	ID          uuid.UUID            `gorm:"column:id" json:"id"`
	ContractNo  string               `gorm:"column:contract_no" json:"contract_no"`
	CompanyID   *uuid.UUID           `gorm:"column:company_id" json:"company_id"`
	CompanyName *string              `gorm:"column:company_name" json:"company_name"`
	RigID       *uuid.UUID           `gorm:"column:rig_id" json:"rig_id"`
	RigName     *string              `gorm:"column:rig_name" json:"rig_name"`
	StartDate   time.Time            `gorm:"column:start_date" json:"start_date"`
	EndDate     time.Time            `gorm:"column:end_date" json:"end_date"`
	ValueUSD    decimal.Decimal      `gorm:"column:value_usd" json:"value_usd"`
	Status      enums.ContractStatus `gorm:"column:status" json:"status"`
	Notes       *string              `gorm:"column:notes" json:"notes"`
	AssetCount  int64                `gorm:"column:asset_count" json:"asset_count"`
	CreatedAt   time.Time            `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"column:updated_at" json:"updated_at"`
}

// ListFilter narrows the contract listing.
type ListFilter struct {
	Search string
	Status string
}

// CreateContractInput carries the fields accepted when registering a
// contract.
type CreateContractInput struct {
	ContractNo string
	CompanyID  *uuid.UUID
	RigID      *uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	ValueUSD   *decimal.Decimal
	Status     enums.ContractStatus
	Notes      *string
	CreatedBy  *uuid.UUID
}

// UpdateContractInput is a partial patch; nil fields are left untouched.
type UpdateContractInput struct {
	CompanyID *uuid.UUID
	RigID     *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	ValueUSD  *decimal.Decimal
	Status    *enums.ContractStatus
	Notes     *string
}
