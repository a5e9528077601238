package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is applied when no rate is configured.
var DefaultTaxRate = decimal.RequireFromString("0.10")

type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

// ParseTaxRate reads a decimal rate such as "0.10". Blank means DefaultTaxRate.
func ParseTaxRate(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTaxRate, nil
	}
	rate, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax rate %q: %w", value, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("tax rate %s out of range [0, 1]", rate)
	}
	return rate, nil
}

// ComputeTotals sums the lines and applies rate, rounding each amount to two places.
func ComputeTotals(lines []Line, rate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
		count += l.Quantity
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(rate).Round(2)

	sub, _ := subtotal.Float64()
	t, _ := tax.Float64()
	total, _ := subtotal.Add(tax).Float64()
	return Totals{Subtotal: sub, Tax: t, Total: total, ItemCount: count}
}
