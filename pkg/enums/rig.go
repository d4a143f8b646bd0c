package enums

import "fmt"

// RigStatus represents the operational state of a drilling rig.
type RigStatus string

const (
	RigStatusActive      RigStatus = "Active"
	RigStatusInactive    RigStatus = "Inactive"
	RigStatusMaintenance RigStatus = "Maintenance"
	RigStatusRetired     RigStatus = "Retired"
)

var validRigStatuses = []RigStatus{
	RigStatusActive,
	RigStatusInactive,
	RigStatusMaintenance,
	RigStatusRetired,
}

// String implements fmt.Stringer.
func (s RigStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RigStatus.
func (s RigStatus) IsValid() bool {
	for _, candidate := range validRigStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRigStatus converts raw input into a RigStatus.
func ParseRigStatus(value string) (RigStatus, error) {
	for _, candidate := range validRigStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rig status %q", value)
}
