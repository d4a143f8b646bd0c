package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// Company represents an operator or vendor counterparty.
type Company struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyCode  string              `gorm:"column:company_code;not null;uniqueIndex"`
	Name         string              `gorm:"column:name;not null"`
	Type         *string             `gorm:"column:type"`
	Country      *string             `gorm:"column:country"`
	ContactName  *string             `gorm:"column:contact_name"`
	ContactEmail *string             `gorm:"column:contact_email"`
	ContactPhone *string             `gorm:"column:contact_phone"`
	Status       enums.CompanyStatus `gorm:"column:status;not null;default:Active"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
