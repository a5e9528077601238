package listing

import (
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/pagination"
)

// Query is everything a category page can ask for.
type Query struct {
	Filter Filter
	Sort   enums.ProductSort
	Page   pagination.Params
}

// Run filters, sorts and paginates, in that order.
func Run(products []catalog.Product, q Query) Page {
	return Paginate(Sort(Apply(products, q.Filter), q.Sort), q.Page)
}
