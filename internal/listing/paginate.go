package listing

import (
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/pagination"
)

// Page is one slice of a filtered listing.
type Page struct {
	Items []catalog.Product `json:"items"`
	Meta  pagination.Meta   `json:"meta"`
}

func Paginate(products []catalog.Product, params pagination.Params) Page {
	start, end, meta := pagination.Bounds(params, len(products))
	items := make([]catalog.Product, end-start)
	copy(items, products[start:end])
	return Page{Items: items, Meta: meta}
}
