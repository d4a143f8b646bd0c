package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// Rig represents a drilling rig that assets can be assigned to.
type Rig struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RigCode       string          `gorm:"column:rig_code;not null;uniqueIndex"`
	Name          string          `gorm:"column:name;not null"`
	Type          *string         `gorm:"column:type"`
	CompanyID     *uuid.UUID      `gorm:"column:company_id;type:uuid"`
	Company       *Company        `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
	Location      *string         `gorm:"column:location"`
	DepthCapacity *string         `gorm:"column:depth_capacity"`
	Status        enums.RigStatus `gorm:"column:status;not null;default:Active"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
