package productview

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
)

var rupeePrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatRs renders an amount as "Rs." followed by Indian digit grouping and two decimals.
func FormatRs(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return "Rs." + rupeePrinter.Sprint(number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// HasDiscount reports whether the product sells below its original price.
func HasDiscount(p catalog.Product) bool {
	return p.OriginalPrice > p.Price
}

// DiscountLabel is the badge text, empty when there is no discount.
func DiscountLabel(p catalog.Product) string {
	if !HasDiscount(p) {
		return ""
	}
	if p.OfferType != nil && p.OfferValue > 0 {
		rounded := formatNumber(math.Floor(p.OfferValue + 0.5))
		switch *p.OfferType {
		case enums.DiscountTypePercent:
			return rounded + "% OFF"
		case enums.DiscountTypeAmount:
			return "Rs." + rounded + " OFF"
		}
	}
	return "Discount"
}

// InStock prefers the explicit flag, then the stock count, and otherwise assumes stock.
func InStock(p catalog.Product) bool {
	if p.InStock != nil {
		return *p.InStock
	}
	if p.StockCount != nil {
		return *p.StockCount > 0
	}
	return true
}
