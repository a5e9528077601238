package catalog

import (
	"strings"

	"github.com/angelmondragon/storefront/pkg/enums"
)

// DefaultPlaceholderImage stands in for products without any image.
const DefaultPlaceholderImage = "/placeholder.svg?height=400&width=400"

// FieldMap tells Normalize how to read one raw collection type.
type FieldMap[T any] struct {
	Kind enums.CatalogKind
	// DefaultBrand is used when the record carries no brand.
	DefaultBrand string
	Base         func(T) RawBase
	Specs        func(T) []string
	// Enrich copies collection-specific fields onto the product.
	Enrich func(T, *Product)
}

type NormalizeOptions struct {
	AssetBase        string
	PlaceholderImage string
	// DefaultBrand overrides the field map's default, e.g. "Apple" on the Apple listing.
	DefaultBrand string
}

// Normalize maps one raw record to a storefront product. It is pure and never fails.
func Normalize[T any](raw T, fields FieldMap[T], opts NormalizeOptions) Product {
	base := fields.Base(raw)
	pricing := ComputePrice(base.Price.Float64(), base.DiscountType, base.DiscountValue.Float64())

	brand := strings.TrimSpace(base.Brand)
	if brand == "" {
		brand = opts.DefaultBrand
	}
	if brand == "" {
		brand = fields.DefaultBrand
	}

	product := Product{
		ID:            base.ID,
		Brand:         brand,
		Name:          base.Model,
		Model:         base.Model,
		Price:         pricing.Price,
		OriginalPrice: pricing.OriginalPrice,
		OfferType:     pricing.OfferType,
		OfferValue:    pricing.OfferValue,
		Specs:         []string{},
		Images:        BuildImages(base.MainImageURL, base.GalleryImageURLs, opts),
		Colors:        validColors(base.Colors),
		CategoryType:  base.CategoryType,
		InStock:       base.InStock.Ptr(),
		Kind:          fields.Kind,
	}
	if base.StockCount != nil {
		count := int(base.StockCount.Float64())
		product.StockCount = &count
	}
	if fields.Specs != nil {
		product.Specs = compact(fields.Specs(raw))
	}
	if fields.Enrich != nil {
		fields.Enrich(raw, &product)
	}
	return product
}

// NormalizeAll maps every record with the same field map.
func NormalizeAll[T any](items []T, fields FieldMap[T], opts NormalizeOptions) []Product {
	out := make([]Product, 0, len(items))
	for _, item := range items {
		out = append(out, Normalize(item, fields, opts))
	}
	return out
}

// BuildImages prefixes the main and gallery URLs with the asset base, skipping
// blanks, and falls back to exactly one placeholder.
func BuildImages(main string, gallery []string, opts NormalizeOptions) []string {
	images := make([]string, 0, 1+len(gallery))
	for _, u := range append([]string{main}, gallery...) {
		if u = strings.TrimSpace(u); u != "" {
			images = append(images, opts.AssetBase+u)
		}
	}
	if len(images) == 0 {
		placeholder := opts.PlaceholderImage
		if placeholder == "" {
			placeholder = DefaultPlaceholderImage
		}
		images = append(images, placeholder)
	}
	return images
}

// NormalizeBrand maps a brand record, prefixing its logo with the asset base.
func NormalizeBrand(raw RawBrand, opts NormalizeOptions) Brand {
	brand := Brand{ID: raw.ID, Name: raw.Name, Status: raw.Status}
	if u := strings.TrimSpace(raw.ImageURL); u != "" {
		brand.ImageURL = opts.AssetBase + u
	}
	return brand
}

func validColors(colors []Color) []Color {
	out := make([]Color, 0, len(colors))
	for _, c := range colors {
		if c.Valid() {
			out = append(out, c)
		}
	}
	return out
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
