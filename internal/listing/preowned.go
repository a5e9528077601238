package listing

import (
	"strings"

	"github.com/angelmondragon/storefront/pkg/enums"
)

// PreOwnedType is one entry of the pre-owned catalog menu.
type PreOwnedType struct {
	Key           string
	Title         string
	Scope         enums.PreOwnedScope
	CategoryTypes []string
}

// PreOwnedTypes lists the pre-owned menu in display order.
var PreOwnedTypes = []PreOwnedType{
	{Key: "iphone", Title: "Pre-Owned iPhones", Scope: enums.PreOwnedScopeApple, CategoryTypes: []string{"iphone"}},
	{Key: "ipad", Title: "Pre-Owned iPads", Scope: enums.PreOwnedScopeApple, CategoryTypes: []string{"ipad"}},
	{Key: "macbook", Title: "Pre-Owned MacBooks", Scope: enums.PreOwnedScopeApple, CategoryTypes: []string{"macbook", "mac book"}},
	{Key: "apple-watch", Title: "Pre-Owned Apple Watches", Scope: enums.PreOwnedScopeApple, CategoryTypes: []string{"apple watch", "watch"}},
	{Key: "airpods", Title: "Pre-Owned AirPods", Scope: enums.PreOwnedScopeApple, CategoryTypes: []string{"airpods"}},
	{Key: "android-phone", Title: "Pre-Owned Android Phones", Scope: enums.PreOwnedScopeAndroid, CategoryTypes: []string{"android smartphone", "android phone", "smartphone"}},
	{Key: "android-watch", Title: "Pre-Owned Android Watches", Scope: enums.PreOwnedScopeAndroid, CategoryTypes: []string{"smart watches", "smart watch", "watch"}},
	{Key: "android-tablet", Title: "Pre-Owned Android Tablets", Scope: enums.PreOwnedScopeAndroid, CategoryTypes: []string{"android tab", "android tablet", "tablet"}},
}

// AllPreOwned is returned for a blank or unknown type key.
var AllPreOwned = PreOwnedType{Title: "Pre-Owned Devices", Scope: enums.PreOwnedScopeAll}

// ResolvePreOwned looks a type key up. Unknown keys fall back to AllPreOwned.
func ResolvePreOwned(key string) PreOwnedType {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, t := range PreOwnedTypes {
		if t.Key == key {
			return t
		}
	}
	return AllPreOwned
}

// Filter translates the type into a listing filter.
func (t PreOwnedType) Filter() Filter {
	f := Filter{CategoryTypes: t.CategoryTypes}
	switch t.Scope {
	case enums.PreOwnedScopeApple:
		f.Brand = appleBrand
	case enums.PreOwnedScopeAndroid:
		f.ExcludeBrand = appleBrand
	}
	return f
}

const appleBrand = "Apple"
