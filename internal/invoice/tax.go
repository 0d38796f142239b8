package invoice

import "github.com/shopspring/decimal"

// Totals is the computed monetary summary of an invoice. GST splits into
// CGST+SGST for intra-state supply and lands whole in IGST otherwise.
type Totals struct {
	Subtotal decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	IGST     decimal.Decimal
	Total    decimal.Decimal
}

var one = decimal.NewFromInt(1)

// ComputeTotals runs the GST math over the line items. EXCLUSIVE prices have
// tax added on top; INCLUSIVE prices are backed out so the gross stays what
// the items sum to. Rounding to 2 decimal places happens once, on the final
// outputs, never on the intermediate subtotal or unsplit GST.
func ComputeTotals(items []Item, gstPercent decimal.Decimal, mode PricingMode, intraState bool, discount decimal.Decimal) Totals {
	rate := gstPercent.Div(decimal.NewFromInt(100))

	raw := decimal.Zero
	for _, item := range items {
		raw = raw.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	var subtotal, gst, total decimal.Decimal

	if mode == PricingInclusive {
		subtotal = raw.Div(one.Add(rate))
		gst = raw.Sub(subtotal)
		total = raw.Sub(discount)
	} else {
		subtotal = raw
		gst = raw.Mul(rate)
		total = subtotal.Add(gst).Sub(discount)
	}

	var cgst, sgst, igst decimal.Decimal

	if intraState {
		half := gst.Div(decimal.NewFromInt(2))
		cgst = half
		sgst = half
	} else {
		igst = gst
	}

	return Totals{
		Subtotal: subtotal.Round(2),
		CGST:     cgst.Round(2),
		SGST:     sgst.Round(2),
		IGST:     igst.Round(2),
		Total:    total.Round(2),
	}
}
