package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"posbill/internal/domain"
)

// TaxRate is the fixed 5% GST applied to the post-discount taxable amount.
var TaxRate = decimal.New(5, -2)

// PricedTotals is the value object produced by PriceCart.
type PricedTotals struct {
	Subtotal      decimal.Decimal
	TaxableAmount decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
}

// PriceCart computes totals for a cart. Numeric anomalies are clamped, never
// rejected: a per-unit discount larger than the price contributes zero, a
// quantity below one counts as one and a negative order discount counts as
// zero. Items are accumulated in input order. The function is pure.
func PriceCart(items []domain.LineItem, orderDiscount decimal.Decimal) PricedTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(lineTotal(item))
	}

	if orderDiscount.IsNegative() {
		orderDiscount = decimal.Zero
	}
	taxable := subtotal.Sub(orderDiscount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	tax := taxable.Mul(TaxRate)

	return PricedTotals{
		Subtotal:      subtotal,
		TaxableAmount: taxable,
		Tax:           tax,
		Total:         taxable.Add(tax),
	}
}

func lineTotal(item domain.LineItem) decimal.Decimal {
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}
	total := item.UnitPrice.Sub(item.Discount).Mul(decimal.NewFromInt(int64(qty)))
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// NewInvoice freezes cart lines into an immutable invoice with priced
// totals. Monetary fields are rounded to two decimal places, matching the
// receipt display and the numeric(12,2) columns of the remote store.
func NewInvoice(id, customerName string, items []domain.LineItem, orderDiscount decimal.Decimal, issuedAt time.Time) domain.Invoice {
	if orderDiscount.IsNegative() {
		orderDiscount = decimal.Zero
	}
	totals := PriceCart(items, orderDiscount)

	lines := make([]domain.LineItem, len(items))
	copy(lines, items)
	for i := range lines {
		if lines[i].Quantity < 1 {
			lines[i].Quantity = 1
		}
		if lines[i].Discount.IsNegative() {
			lines[i].Discount = decimal.Zero
		}
	}

	return domain.Invoice{
		ID:            id,
		CustomerName:  customerName,
		Lines:         lines,
		Subtotal:      totals.Subtotal.Round(2),
		OrderDiscount: orderDiscount.Round(2),
		Tax:           totals.Tax.Round(2),
		Total:         totals.Total.Round(2),
		IssuedAt:      issuedAt,
	}
}

// NewInvoiceID builds a caller-generated invoice id from the checkout time.
func NewInvoiceID(now time.Time) string {
	return fmt.Sprintf("INV-%d", now.UnixMilli())
}
