package productview

import (
	"strings"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// DetailPlaceholderImage stands in on the detail page when a product has no images.
const DetailPlaceholderImage = "/placeholder.svg?height=700&width=700"

// View is the detail page model built from one product.
type View struct {
	Product            catalog.Product `json:"product"`
	Images             []string        `json:"images"`
	Colors             []ColorOption   `json:"colors"`
	Storages           []float64       `json:"storages"`
	HasDiscount        bool            `json:"hasDiscount"`
	DiscountLabel      string          `json:"discountLabel,omitempty"`
	InStock            bool            `json:"inStock"`
	PriceLabel         string          `json:"priceLabel"`
	OriginalPriceLabel string          `json:"originalPriceLabel"`
	Default            Selection       `json:"defaultSelection"`
}

// Selection is the shopper's chosen variant. Blank fields pick the first option.
type Selection struct {
	ColorID string   `json:"colorId,omitempty"`
	Storage *float64 `json:"storage,omitempty"`
}

// Variant is a resolved selection of one product.
type Variant struct {
	ProductID string       `json:"productId"`
	Color     *ColorOption `json:"color,omitempty"`
	Storage   *float64     `json:"storage,omitempty"`
	Price     float64      `json:"price"`
	Image     string       `json:"image"`
	name      string
}

// NewView derives the detail page model.
func NewView(p catalog.Product) View {
	v := View{
		Product:            p,
		Images:             detailImages(p.Images),
		Colors:             NormalizeColors(p.Colors),
		Storages:           NormalizeStorages(p.StorageOptions),
		HasDiscount:        HasDiscount(p),
		DiscountLabel:      DiscountLabel(p),
		InStock:            InStock(p),
		PriceLabel:         FormatRs(p.Price),
		OriginalPriceLabel: FormatRs(p.OriginalPrice),
	}
	if len(v.Colors) > 0 {
		v.Default.ColorID = v.Colors[0].ID
	}
	if len(v.Storages) > 0 {
		first := v.Storages[0]
		v.Default.Storage = &first
	}
	return v
}

// Resolve applies sel, defaulting to the first color and storage. Unknown
// choices are validation errors.
func (v View) Resolve(sel Selection) (*Variant, error) {
	variant := &Variant{
		ProductID: v.Product.ID,
		Price:     v.Product.Price,
		Image:     v.Images[0],
		name:      v.Product.Name,
	}

	colorID := strings.TrimSpace(sel.ColorID)
	if colorID == "" {
		colorID = v.Default.ColorID
	}
	if colorID != "" {
		for i := range v.Colors {
			if v.Colors[i].ID == colorID {
				c := v.Colors[i]
				variant.Color = &c
				break
			}
		}
		if variant.Color == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown color").
				WithDetails(map[string]any{"colorId": colorID})
		}
	}

	storage := sel.Storage
	if storage == nil {
		storage = v.Default.Storage
	}
	if storage != nil {
		found := false
		for _, gb := range v.Storages {
			if gb == *storage {
				found = true
				break
			}
		}
		if !found {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown storage option").
				WithDetails(map[string]any{"storage": *storage})
		}
		gb := *storage
		variant.Storage = &gb
	}
	return variant, nil
}

// CartID joins the product id, color name and storage with "--", skipping empty parts.
func (v Variant) CartID() string {
	parts := []string{v.ProductID}
	if v.Color != nil {
		if v.Color.Name != "" {
			parts = append(parts, v.Color.Name)
		} else if v.Color.ID != "" {
			parts = append(parts, v.Color.ID)
		}
	}
	if v.Storage != nil {
		parts = append(parts, "storage-"+formatNumber(*v.Storage))
	}
	return strings.Join(compact(parts), "--")
}

// Label is "name • NGB • Color" with absent parts left out.
func (v Variant) Label() string {
	parts := []string{v.name}
	if v.Storage != nil {
		parts = append(parts, formatNumber(*v.Storage)+"GB")
	}
	if v.Color != nil && v.Color.Name != "" {
		parts = append(parts, v.Color.Name)
	}
	return strings.Join(compact(parts), " • ")
}

// CartLine builds the cart entry for quantity units; quantities below one count as one.
func (v Variant) CartLine(quantity int) cart.Line {
	if quantity < 1 {
		quantity = 1
	}
	return cart.Line{
		ID:       v.CartID(),
		Name:     v.Label(),
		Price:    v.Price,
		Image:    v.Image,
		Quantity: quantity,
	}
}

func detailImages(images []string) []string {
	out := compact(images)
	if len(out) == 0 {
		return []string{DetailPlaceholderImage}
	}
	return out
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
