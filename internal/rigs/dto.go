package rigs

import (
	"time"

	"github.com/google/uuid"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// RigRow is a rig joined with its owning company and assigned asset count.
type RigRow struct {
	ID            uuid.UUID       `gorm:"column:id" json:"id"`
	RigCode       string          `gorm:"column:rig_code" json:"rig_code"`
	Name          string          `gorm:"column:name" json:"name"`
	Type          *string         `gorm:"column:type" json:"type"`
	CompanyID     *uuid.UUID      `gorm:"column:company_id" json:"company_id"`
	CompanyName   *string         `gorm:"column:company_name" json:"company_name"`
	Location      *string         `gorm:"column:location" json:"location"`
	DepthCapacity *string         `gorm:"column:depth_capacity" json:"depth_capacity"`
	Status        enums.RigStatus `gorm:"column:status" json:"status"`
	AssetCount    int64           `gorm:"column:asset_count" json:"asset_count"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

// CreateRigInput carries the fields accepted when registering a rig.
type CreateRigInput struct {
	RigCode       string
	Name          string
	Type          *string
	CompanyID     *uuid.UUID
	Location      *string
	DepthCapacity *string
	Status        enums.RigStatus
}

// UpdateRigInput is a partial patch; nil fields are left untouched.
type UpdateRigInput struct {
	Name          *string
	Type          *string
	CompanyID     *uuid.UUID
	Location      *string
	DepthCapacity *string
	Status        *enums.RigStatus
}
