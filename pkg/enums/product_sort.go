package enums

import (
	"fmt"
	"strings"
)

// ProductSort orders a listing page.
type ProductSort string

const (
	ProductSortFeatured  ProductSort = "featured"
	ProductSortPriceLow  ProductSort = "price-low"
	ProductSortPriceHigh ProductSort = "price-high"
)

var validProductSorts = []ProductSort{
	ProductSortFeatured,
	ProductSortPriceLow,
	ProductSortPriceHigh,
}

func (s ProductSort) String() string {
	return string(s)
}

func (s ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductSort treats an empty value as featured.
func ParseProductSort(value string) (ProductSort, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ProductSortFeatured, nil
	}
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort %q", value)
}
