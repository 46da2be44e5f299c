package enums

import "fmt"

// StoreType classifies the sales channel a store represents.
type StoreType string

const (
	StoreTypeMarketplace StoreType = "Marketplace"
	StoreTypeOnline      StoreType = "Online"
	StoreTypePhysical    StoreType = "Physical"
)

var validStoreTypes = []StoreType{
	StoreTypeMarketplace,
	StoreTypeOnline,
	StoreTypePhysical,
}

// String implements fmt.Stringer.
func (s StoreType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StoreType.
func (s StoreType) IsValid() bool {
	for _, candidate := range validStoreTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStoreType converts raw input into a StoreType.
func ParseStoreType(value string) (StoreType, error) {
	for _, candidate := range validStoreTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store type %q", value)
}
