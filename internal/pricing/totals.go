// Package pricing derives the checkout money summary from cart contents
// and external tax/shipping inputs.
package pricing

import (
	"math"

	"github.com/tibacare/storefront/internal/domain"
)

// ComputeTotals rolls the cart up into subtotal, VAT, shipping, and grand
// total. Entries whose product id is missing from priceByID contribute
// zero: a product deleted from the catalog after it was carted is a
// recoverable condition, not a computation error. VAT is rounded to two
// decimals, half up, once at the end — never per line — so rounding drift
// cannot accumulate across lines.
func ComputeTotals(entries []domain.CartEntry, priceByID map[string]float64, taxRate float64, shippingCost float64) domain.Totals {
	var subtotal float64
	for _, entry := range entries {
		if entry.Quantity <= 0 {
			continue
		}
		price, ok := priceByID[entry.ProductID]
		if !ok || price <= 0 {
			continue
		}
		subtotal += price * float64(entry.Quantity)
	}
	subtotal = Round2(subtotal)

	if taxRate < 0 {
		taxRate = 0
	}
	vat := Round2(subtotal * taxRate)

	if shippingCost < 0 {
		shippingCost = 0
	}

	total := subtotal + vat + shippingCost
	if total < 0 {
		total = 0
	}

	return domain.Totals{
		Subtotal: subtotal,
		Shipping: shippingCost,
		VAT:      vat,
		Total:    Round2(total),
	}
}

// LookupShipping resolves a chosen shipping option to its cost. An empty
// or unknown option id costs zero: no applicable option for the
// destination is a valid state, not an error.
func LookupShipping(options []domain.ShippingOption, optionID string) float64 {
	if optionID == "" {
		return 0
	}
	for _, option := range options {
		if option.ID == optionID {
			if option.Cost < 0 {
				return 0
			}
			return option.Cost
		}
	}
	return 0
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
