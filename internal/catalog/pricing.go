package catalog

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/enums"
)

// pricePlaces is the currency minor-unit precision prices are rounded to.
const pricePlaces = 2

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Pricing is the outcome of applying at most one discount rule to a raw price.
type Pricing struct {
	Price         float64
	OriginalPrice float64
	OfferType     *enums.DiscountType
	OfferValue    float64
}

// ComputePrice derives the effective price. discountType is trimmed and
// lower-cased; only "percent" and "amount" with a positive value apply. A
// discounted price is rounded half away from zero to two places; without a
// discount the raw price passes through unchanged. Neither drops below zero.
func ComputePrice(rawPrice float64, discountType string, discountValue float64) Pricing {
	rawPrice = finiteOrZero(rawPrice)
	discountValue = finiteOrZero(discountValue)

	pricing := Pricing{
		Price:         rawPrice,
		OriginalPrice: rawPrice,
	}

	kind, err := enums.ParseDiscountType(discountType)
	if err != nil || discountValue <= 0 {
		pricing.Price = math.Max(rawPrice, 0)
		return pricing
	}

	raw := decimal.NewFromFloat(rawPrice)
	value := decimal.NewFromFloat(discountValue)

	var effective decimal.Decimal
	switch kind {
	case enums.DiscountTypePercent:
		effective = raw.Mul(one.Sub(value.Div(hundred)))
	case enums.DiscountTypeAmount:
		effective = raw.Sub(value)
	}

	pricing.Price = clampPrice(effective)
	pricing.OfferType = &kind
	pricing.OfferValue = discountValue
	return pricing
}

func clampPrice(d decimal.Decimal) float64 {
	if d.IsNegative() {
		return 0
	}
	f, _ := d.Round(pricePlaces).Float64()
	return f
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
