package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/arindamg/taskledger/internal/invoice"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(qty int, unitPrice string) invoice.Item {
	return invoice.Item{Quantity: qty, UnitPrice: dec(unitPrice)}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name       string
		items      []invoice.Item
		gstPercent string
		mode       invoice.PricingMode
		intraState bool
		discount   string
		want       invoice.Totals
	}{
		{
			name:       "ExclusiveIntraState",
			items:      []invoice.Item{item(2, "5000")},
			gstPercent: "18",
			mode:       invoice.PricingExclusive,
			intraState: true,
			discount:   "0",
			want: invoice.Totals{
				Subtotal: dec("10000"),
				CGST:     dec("900"),
				SGST:     dec("900"),
				IGST:     dec("0"),
				Total:    dec("11800"),
			},
		},
		{
			name:       "InclusiveBacksOutTax",
			items:      []invoice.Item{item(1, "11800")},
			gstPercent: "18",
			mode:       invoice.PricingInclusive,
			intraState: true,
			discount:   "0",
			want: invoice.Totals{
				Subtotal: dec("10000"),
				CGST:     dec("900"),
				SGST:     dec("900"),
				IGST:     dec("0"),
				Total:    dec("11800"),
			},
		},
		{
			name:       "InterStateLandsInIGST",
			items:      []invoice.Item{item(2, "5000")},
			gstPercent: "18",
			mode:       invoice.PricingExclusive,
			intraState: false,
			discount:   "0",
			want: invoice.Totals{
				Subtotal: dec("10000"),
				CGST:     dec("0"),
				SGST:     dec("0"),
				IGST:     dec("1800"),
				Total:    dec("11800"),
			},
		},
		{
			name:       "DiscountComesOffTheGross",
			items:      []invoice.Item{item(1, "1000")},
			gstPercent: "18",
			mode:       invoice.PricingExclusive,
			intraState: false,
			discount:   "100",
			want: invoice.Totals{
				Subtotal: dec("1000"),
				CGST:     dec("0"),
				SGST:     dec("0"),
				IGST:     dec("180"),
				Total:    dec("1080"),
			},
		},
		{
			name:       "InclusiveDiscountOffTheRaw",
			items:      []invoice.Item{item(1, "1180")},
			gstPercent: "18",
			mode:       invoice.PricingInclusive,
			intraState: false,
			discount:   "80",
			want: invoice.Totals{
				Subtotal: dec("1000"),
				CGST:     dec("0"),
				SGST:     dec("0"),
				IGST:     dec("180"),
				Total:    dec("1100"),
			},
		},
		{
			name:       "RoundsOnlyAtTheEnd",
			items:      []invoice.Item{item(1, "100"), item(3, "33.335")},
			gstPercent: "18",
			mode:       invoice.PricingExclusive,
			intraState: true,
			discount:   "0",
			// raw = 200.005, gst = 36.0009, halves = 18.00045
			want: invoice.Totals{
				Subtotal: dec("200.01"),
				CGST:     dec("18"),
				SGST:     dec("18"),
				IGST:     dec("0"),
				Total:    dec("236.01"),
			},
		},
		{
			name:       "ZeroRate",
			items:      []invoice.Item{item(4, "250")},
			gstPercent: "0",
			mode:       invoice.PricingExclusive,
			intraState: true,
			discount:   "0",
			want: invoice.Totals{
				Subtotal: dec("1000"),
				CGST:     dec("0"),
				SGST:     dec("0"),
				IGST:     dec("0"),
				Total:    dec("1000"),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := invoice.ComputeTotals(tc.items, dec(tc.gstPercent), tc.mode, tc.intraState, dec(tc.discount))

			assert.True(t, tc.want.Subtotal.Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, tc.want.CGST.Equal(got.CGST), "cgst %s", got.CGST)
			assert.True(t, tc.want.SGST.Equal(got.SGST), "sgst %s", got.SGST)
			assert.True(t, tc.want.IGST.Equal(got.IGST), "igst %s", got.IGST)
			assert.True(t, tc.want.Total.Equal(got.Total), "total %s", got.Total)
		})
	}
}

func TestSequenceKeyNumberFormat(t *testing.T) {
	key := invoice.SequenceKey{IssuerCode: "OM", FY: "2526", Month: "JUL"}

	assert.Equal(t, "O/OM/JUL02/2526", key.Number(2))
	assert.Equal(t, "O/OM/JUL117/2526", key.Number(117))
}
