package draft

// Totals are the four derived money fields of a quote.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"taxAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	Total          float64 `json:"total"`
}

// ComputeTotals derives quote totals from line items and percentage
// rates. The total may go negative when the discount exceeds subtotal
// plus tax; callers get the raw value, nothing is clamped here.
func ComputeTotals(items []LineItem, taxPct, discountPct float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Quantity * item.Rate
	}

	taxAmount := subtotal * taxPct / 100
	discountAmount := subtotal * discountPct / 100

	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		DiscountAmount: discountAmount,
		Total:          subtotal + taxAmount - discountAmount,
	}
}
