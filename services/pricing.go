package services

import (
	"math"

	"github.com/little-lemon/little-lemon-api/models"
)

// Pricing rules live here as pure functions so every derived money field
// (cart line price, order line price, order total) is computed in exactly
// one place and testable in isolation.

// LinePrice returns unit price × quantity rounded to cents
func LinePrice(unitPrice float64, quantity int) float64 {
	return round2(unitPrice * float64(quantity))
}

// CartTotal sums the line prices of a set of cart items
func CartTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return round2(total)
}

// OrderTotal sums the line prices of a set of order items. Totals are always
// re-derived from the items, never incrementally patched.
func OrderTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
