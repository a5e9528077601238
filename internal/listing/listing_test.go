package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/pagination"
)

func product(id, brand, category string, price float64) catalog.Product {
	return catalog.Product{ID: id, Brand: brand, Name: id, Model: id, CategoryType: category, Price: price}
}

func ids(products []catalog.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func fixtures() []catalog.Product {
	return []catalog.Product{
		product("iphone-15", "Apple", "iPhone", 900),
		product("galaxy-s24", "Samsung", "Android Smartphone", 800),
		product("ipad-air", " apple ", "iPad", 600),
		product("pixel-8", "Google", "smartphone", 700),
		product("watch-9", "APPLE", "Watch", 400),
		product("galaxy-watch", "Samsung", "Smart Watch", 300),
	}
}

func float(v float64) *float64 { return &v }

func TestApplyBrandIgnoresCaseAndWhitespace(t *testing.T) {
	want := []string{"iphone-15", "ipad-air", "watch-9"}
	for _, brand := range []string{"Apple", "apple", "APPLE", " Apple "} {
		got := Apply(fixtures(), Filter{Brand: brand})
		assert.Equal(t, want, ids(got), "brand %q", brand)
	}
}

func TestApplyExcludeBrand(t *testing.T) {
	got := Apply(fixtures(), Filter{ExcludeBrand: "apple"})
	assert.Equal(t, []string{"galaxy-s24", "pixel-8", "galaxy-watch"}, ids(got))
}

func TestApplyCategoryAllowList(t *testing.T) {
	got := Apply(fixtures(), Filter{CategoryTypes: []string{"SMARTPHONE", "android smartphone "}})
	assert.Equal(t, []string{"galaxy-s24", "pixel-8"}, ids(got))
}

func TestApplySearchAndPriceRange(t *testing.T) {
	items := fixtures()
	items[3].Specs = []string{"8GB RAM", "Tensor G3"}

	assert.Equal(t, []string{"pixel-8"}, ids(Apply(items, Filter{Search: " tensor"})))
	assert.Equal(t, []string{"galaxy-s24", "galaxy-watch"}, ids(Apply(items, Filter{Search: "GALAXY"})))

	got := Apply(items, Filter{MinPrice: float(600), MaxPrice: float(800)})
	assert.Equal(t, []string{"galaxy-s24", "ipad-air", "pixel-8"}, ids(got))
}

func TestApplyEmptyFilterKeepsOrder(t *testing.T) {
	items := fixtures()
	assert.Equal(t, ids(items), ids(Apply(items, Filter{})))
	assert.Empty(t, Apply(nil, Filter{Brand: "Apple"}))
}

func TestSort(t *testing.T) {
	items := fixtures()
	items = append(items, product("pixel-8a", "Google", "smartphone", 700))

	assert.Equal(t, ids(items), ids(Sort(items, enums.ProductSortFeatured)))
	assert.Equal(t,
		[]string{"galaxy-watch", "watch-9", "ipad-air", "pixel-8", "pixel-8a", "galaxy-s24", "iphone-15"},
		ids(Sort(items, enums.ProductSortPriceLow)))
	assert.Equal(t,
		[]string{"iphone-15", "galaxy-s24", "pixel-8", "pixel-8a", "ipad-air", "watch-9", "galaxy-watch"},
		ids(Sort(items, enums.ProductSortPriceHigh)))
	assert.Equal(t, "iphone-15", items[0].ID, "input must not be reordered")
}

func TestResolvePreOwned(t *testing.T) {
	tests := []struct {
		key   string
		scope enums.PreOwnedScope
		want  []string
	}{
		{key: "iphone", scope: enums.PreOwnedScopeApple, want: []string{"iphone-15"}},
		{key: " Apple-Watch ", scope: enums.PreOwnedScopeApple, want: []string{"watch-9"}},
		{key: "android-watch", scope: enums.PreOwnedScopeAndroid, want: []string{"galaxy-watch"}},
		{key: "android-phone", scope: enums.PreOwnedScopeAndroid, want: []string{"galaxy-s24", "pixel-8"}},
		{key: "", scope: enums.PreOwnedScopeAll, want: ids(fixtures())},
		{key: "toaster", scope: enums.PreOwnedScopeAll, want: ids(fixtures())},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			typ := ResolvePreOwned(tt.key)
			assert.Equal(t, tt.scope, typ.Scope)
			assert.Equal(t, tt.want, ids(Apply(fixtures(), typ.Filter())))
		})
	}
}

func TestPreOwnedKeysAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, typ := range PreOwnedTypes {
		require.False(t, seen[typ.Key], "duplicate key %s", typ.Key)
		seen[typ.Key] = true
		require.NotEmpty(t, typ.CategoryTypes)
	}
	assert.Len(t, seen, 8)
}

func TestRunPaginates(t *testing.T) {
	page := Run(fixtures(), Query{
		Filter: Filter{ExcludeBrand: "Apple"},
		Sort:   enums.ProductSortPriceLow,
		Page:   pagination.Params{Page: 2, Limit: 2},
	})
	assert.Equal(t, []string{"galaxy-s24"}, ids(page.Items))
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 2, Total: 3, TotalPages: 2, HasNext: false}, page.Meta)

	page = Run(fixtures(), Query{Page: pagination.Params{Page: 9, Limit: 2}})
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}
