package listing

import (
	"sort"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
)

// Sort returns a sorted copy. Featured keeps the upstream order; price sorts are
// stable so equal prices keep it too.
func Sort(products []catalog.Product, by enums.ProductSort) []catalog.Product {
	out := make([]catalog.Product, len(products))
	copy(out, products)

	switch by {
	case enums.ProductSortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case enums.ProductSortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}
