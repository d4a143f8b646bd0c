package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetHistory records one field-level change made to an asset.
type AssetHistory struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AssetID     uuid.UUID  `gorm:"column:asset_id;type:uuid;not null;index"`
	Action      string     `gorm:"column:action;not null"`
	FieldName   *string    `gorm:"column:field_name"`
	OldValue    *string    `gorm:"column:old_value"`
	NewValue    *string    `gorm:"column:new_value"`
	Notes       *string    `gorm:"column:notes"`
	PerformedBy *uuid.UUID `gorm:"column:performed_by;type:uuid"`
	PerformedAt time.Time  `gorm:"column:performed_at;autoCreateTime"`
}

// TableName keeps the singular table name from the schema.
func (AssetHistory) TableName() string {
	return "asset_history"
}
