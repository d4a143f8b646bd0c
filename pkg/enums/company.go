package enums

import "fmt"

// CompanyStatus marks whether a company is an active counterparty.
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "Active"
	CompanyStatusInactive CompanyStatus = "Inactive"
)

var validCompanyStatuses = []CompanyStatus{
	CompanyStatusActive,
	CompanyStatusInactive,
}

// String implements fmt.Stringer.
func (s CompanyStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CompanyStatus.
func (s CompanyStatus) IsValid() bool {
	for _, candidate := range validCompanyStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCompanyStatus converts raw input into a CompanyStatus.
func ParseCompanyStatus(value string) (CompanyStatus, error) {
	for _, candidate := range validCompanyStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid company status %q", value)
}
