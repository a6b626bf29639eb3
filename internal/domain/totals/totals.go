package totals

import (
	"github.com/shopspring/decimal"

	"github.com/nashon/pos-ledger-api/internal/domain/entity"
)

// TaxRate is the flat sales tax applied to every document.
const TaxRate = 0.08

var taxRate = decimal.NewFromFloat(TaxRate)

// Totals holds the derived monetary values of a document. Subtotal and
// Tax are always expressed to exactly two decimal places.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// Round2 rounds a monetary value half-up at the cent.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// subtotalAndTax computes the shared part of both policies:
// subtotal = round2(sum of price*quantity), tax = round2(subtotal * rate).
func subtotalAndTax(items []entity.LineItem) (decimal.Decimal, decimal.Decimal) {
	sum := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}
	subtotal := sum.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	return subtotal, tax
}

// ForOrder derives order totals. Order totals round the sum up to the
// next whole currency unit: an order never charges fractional cents, so
// the total is always integral. This differs deliberately from invoices.
func ForOrder(items []entity.LineItem) Totals {
	subtotal, tax := subtotalAndTax(items)
	total := subtotal.Add(tax).Ceil()
	return toTotals(subtotal, tax, total)
}

// ForInvoice derives invoice totals using standard cent rounding on the
// sum of subtotal and tax.
func ForInvoice(items []entity.LineItem) Totals {
	subtotal, tax := subtotalAndTax(items)
	total := subtotal.Add(tax).Round(2)
	return toTotals(subtotal, tax, total)
}

func toTotals(subtotal, tax, total decimal.Decimal) Totals {
	s, _ := subtotal.Float64()
	t, _ := tax.Float64()
	g, _ := total.Float64()
	return Totals{Subtotal: s, Tax: t, Total: g}
}
