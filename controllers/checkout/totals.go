package checkoutControllers

import "math"

const (
	// Flat shipping fee, waived above the free-shipping threshold.
	shippingFlatFee       = 50.0
	freeShippingThreshold = 500.0
	// Tax charged as a flat percentage of the subtotal.
	taxRate = 0.18
)

// Totals is the price breakdown fixed at payment entry. It is what gets
// charged and stored; it is never recomputed afterwards.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	ShippingFee float64 `json:"shipping_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// ComputeTotals derives the order total from a cart subtotal.
func ComputeTotals(subtotal float64) Totals {
	fee := shippingFlatFee
	if subtotal >= freeShippingThreshold {
		fee = 0
	}
	tax := math.Round(subtotal * taxRate)
	return Totals{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Tax:         tax,
		Total:       subtotal + fee + tax,
	}
}
