package enums

import "fmt"

// CostType buckets operational expenses.
type CostType string

const (
	CostTypeMaterial    CostType = "Material"
	CostTypeEnergy      CostType = "Energy"
	CostTypePackaging   CostType = "Packaging"
	CostTypeMaintenance CostType = "Maintenance"
	CostTypeOther       CostType = "Other"
)

var validCostTypes = []CostType{
	CostTypeMaterial,
	CostTypeEnergy,
	CostTypePackaging,
	CostTypeMaintenance,
	CostTypeOther,
}

// String implements fmt.Stringer.
func (c CostType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CostType.
func (c CostType) IsValid() bool {
	for _, candidate := range validCostTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCostType converts raw input into a CostType.
func ParseCostType(value string) (CostType, error) {
	for _, candidate := range validCostTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cost type %q", value)
}
