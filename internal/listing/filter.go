package listing

import (
	"strings"

	"github.com/angelmondragon/storefront/internal/catalog"
)

// Filter narrows a fetched collection. Zero fields do not filter.
type Filter struct {
	Brand string
	// ExcludeBrand drops products of one brand, e.g. Apple on Android listings.
	ExcludeBrand string
	// CategoryTypes is an allow-list matched against Product.CategoryType.
	CategoryTypes []string
	Search        string
	MinPrice      *float64
	MaxPrice      *float64
}

// Apply returns the products matching every set criterion, in input order.
// String comparisons ignore case and surrounding whitespace; the price range is
// inclusive and compares effective prices.
func Apply(products []catalog.Product, f Filter) []catalog.Product {
	brand := norm(f.Brand)
	exclude := norm(f.ExcludeBrand)
	search := norm(f.Search)
	allowed := categorySet(f.CategoryTypes)

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		productBrand := norm(p.Brand)
		if brand != "" && productBrand != brand {
			continue
		}
		if exclude != "" && productBrand == exclude {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[norm(p.CategoryType)]; !ok {
				continue
			}
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p catalog.Product, needle string) bool {
	for _, field := range []string{p.Brand, p.Name, p.Model} {
		if strings.Contains(norm(field), needle) {
			return true
		}
	}
	for _, spec := range p.Specs {
		if strings.Contains(norm(spec), needle) {
			return true
		}
	}
	return false
}

func categorySet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = norm(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func norm(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
