package enums

import "fmt"

// BOMItemType distinguishes individually tracked components from fungible stock.
type BOMItemType string

const (
	BOMItemTypeSerialized BOMItemType = "Serialized"
	BOMItemTypeBulk       BOMItemType = "Bulk"
)

var validBOMItemTypes = []BOMItemType{
	BOMItemTypeSerialized,
	BOMItemTypeBulk,
}

// String implements fmt.Stringer.
func (t BOMItemType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known BOMItemType.
func (t BOMItemType) IsValid() bool {
	for _, candidate := range validBOMItemTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseBOMItemType converts raw input into a BOMItemType.
func ParseBOMItemType(value string) (BOMItemType, error) {
	for _, candidate := range validBOMItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bom item type %q", value)
}

// BOMItemStatus represents the availability state of a component.
type BOMItemStatus string

const (
	BOMItemStatusActive   BOMItemStatus = "Active"
	BOMItemStatusInactive BOMItemStatus = "Inactive"
	BOMItemStatusObsolete BOMItemStatus = "Obsolete"
	BOMItemStatusOnOrder  BOMItemStatus = "On Order"
)

var validBOMItemStatuses = []BOMItemStatus{
	BOMItemStatusActive,
	BOMItemStatusInactive,
	BOMItemStatusObsolete,
	BOMItemStatusOnOrder,
}

// String implements fmt.Stringer.
func (s BOMItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known BOMItemStatus.
func (s BOMItemStatus) IsValid() bool {
	for _, candidate := range validBOMItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseBOMItemStatus converts raw input into a BOMItemStatus.
func ParseBOMItemStatus(value string) (BOMItemStatus, error) {
	for _, candidate := range validBOMItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bom item status %q", value)
}
