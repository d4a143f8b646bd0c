package enums

import "fmt"

// AssetStatus represents the lifecycle states of a tracked asset.
type AssetStatus string

const (
	AssetStatusActive      AssetStatus = "Active"
	AssetStatusInactive    AssetStatus = "Inactive"
	AssetStatusMaintenance AssetStatus = "Maintenance"
	AssetStatusContracted  AssetStatus = "Contracted"
	AssetStatusRetired     AssetStatus = "Retired"
)

var validAssetStatuses = []AssetStatus{
	AssetStatusActive,
	AssetStatusInactive,
	AssetStatusMaintenance,
	AssetStatusContracted,
	AssetStatusRetired,
}

// String implements fmt.Stringer.
func (s AssetStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known AssetStatus.
func (s AssetStatus) IsValid() bool {
	for _, candidate := range validAssetStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseAssetStatus converts raw input into an AssetStatus.
func ParseAssetStatus(value string) (AssetStatus, error) {
	for _, candidate := range validAssetStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid asset status %q", value)
}
