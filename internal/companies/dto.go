package companies

import (
	"time"

	"github.com/google/uuid"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// CompanyRow is a company joined with its count of active contracts.
type CompanyRow struct {
	ID              uuid.UUID           `gorm:"column:id" json:"id"`
	CompanyCode     string              `gorm:"column:company_code" json:"company_code"`
	Name            string              `gorm:"column:name" json:"name"`
	Type            *string             `gorm:"column:type" json:"type"`
	Country         *string             `gorm:"column:country" json:"country"`
	ContactName     *string             `gorm:"column:contact_name" json:"contact_name"`
	ContactEmail    *string             `gorm:"column:contact_email" json:"contact_email"`
	ContactPhone    *string             `gorm:"column:contact_phone" json:"contact_phone"`
	Status          enums.CompanyStatus `gorm:"column:status" json:"status"`
	ActiveContracts int64               `gorm:"column:active_contracts" json:"active_contracts"`
	CreatedAt       time.Time           `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"column:updated_at" json:"updated_at"`
}

// CreateCompanyInput carries the fields accepted when registering a company.
type CreateCompanyInput struct {
	CompanyCode  string
	Name         string
	Type         *string
	Country      *string
	ContactName  *string
	ContactEmail *string
	ContactPhone *string
	Status       enums.CompanyStatus
}

// UpdateCompanyInput is a partial patch; nil fields are left untouched.
type UpdateCompanyInput struct {
	Name         *string
	Type         *string
	Country      *string
	ContactName  *string
	ContactEmail *string
	ContactPhone *string
	Status       *enums.CompanyStatus
}
