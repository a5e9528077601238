package enums

import (
	"fmt"
	"strings"
)

// DiscountType is the kind of price reduction carried by a catalog record.
type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeAmount  DiscountType = "amount"
)

var validDiscountTypes = []DiscountType{
	DiscountTypePercent,
	DiscountTypeAmount,
}

// String implements fmt.Stringer.
func (d DiscountType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DiscountType.
func (d DiscountType) IsValid() bool {
	for _, candidate := range validDiscountTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDiscountType trims and lower-cases value before matching.
func ParseDiscountType(value string) (DiscountType, error) {
	normalized := DiscountType(strings.ToLower(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid discount type %q", value)
}
