package money

import "math"

// LineItem is the minimal shape needed to price a single invoice row.
type LineItem struct {
	Quantity       int64
	UnitPriceCents int64
}

// Totals holds the derived financial summary of an invoice.
// All values are integer cents so total = subtotal + tax holds exactly.
type Totals struct {
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

// ItemTotal returns quantity * unit price in cents. Zero or negative
// quantities are accepted and flow through unchanged.
func ItemTotal(quantity, unitPriceCents int64) int64 {
	return quantity * unitPriceCents
}

// Calculate sums line items into a subtotal, applies the tax rate and
// returns the grand total. An empty item list yields all zeroes.
func Calculate(items []LineItem, taxRate float64) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += ItemTotal(item.Quantity, item.UnitPriceCents)
	}
	tax := int64(math.Round(float64(subtotal) * taxRate))
	return Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    subtotal + tax,
	}
}
