package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"posbill/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPriceCartItemDiscountScenario(t *testing.T) {
	items := []domain.LineItem{
		{Name: "Soap", UnitPrice: dec("100"), Quantity: 2, Discount: dec("10")},
	}
	got := PriceCart(items, decimal.Zero)
	if !got.Subtotal.Equal(dec("180")) {
		t.Fatalf("subtotal = %s, want 180", got.Subtotal)
	}
	if !got.Tax.Equal(dec("9")) {
		t.Fatalf("tax = %s, want 9", got.Tax)
	}
	if !got.Total.Equal(dec("189")) {
		t.Fatalf("total = %s, want 189", got.Total)
	}
}

func TestPriceCartDiscountLargerThanPriceClampsToZero(t *testing.T) {
	items := []domain.LineItem{
		{Name: "Pen", UnitPrice: dec("50"), Quantity: 1, Discount: dec("60")},
	}
	got := PriceCart(items, decimal.Zero)
	if !got.Subtotal.IsZero() || !got.Tax.IsZero() || !got.Total.IsZero() {
		t.Fatalf("expected all-zero totals, got %+v", got)
	}
}

func TestPriceCartOrderDiscountAppliedBeforeTax(t *testing.T) {
	items := []domain.LineItem{
		{Name: "Rice", UnitPrice: dec("200"), Quantity: 3},
	}
	got := PriceCart(items, dec("150"))
	if !got.Subtotal.Equal(dec("600")) {
		t.Fatalf("subtotal = %s, want 600", got.Subtotal)
	}
	if !got.TaxableAmount.Equal(dec("450")) {
		t.Fatalf("taxable = %s, want 450", got.TaxableAmount)
	}
	if !got.Tax.Equal(dec("22.5")) {
		t.Fatalf("tax = %s, want 22.5", got.Tax)
	}
	if !got.Total.Equal(dec("472.5")) {
		t.Fatalf("total = %s, want 472.5", got.Total)
	}
}

func TestPriceCartNegativeOrderDiscountClampsToZero(t *testing.T) {
	items := []domain.LineItem{
		{Name: "Tea", UnitPrice: dec("80"), Quantity: 1},
	}
	got := PriceCart(items, dec("-20"))
	if !got.TaxableAmount.Equal(dec("80")) {
		t.Fatalf("taxable = %s, want 80", got.TaxableAmount)
	}
}

func TestPriceCartOrderDiscountExceedingSubtotal(t *testing.T) {
	items := []domain.LineItem{
		{Name: "Tea", UnitPrice: dec("30"), Quantity: 1},
	}
	got := PriceCart(items, dec("100"))
	if !got.TaxableAmount.IsZero() || !got.Total.IsZero() {
		t.Fatalf("expected zero taxable and total, got %+v", got)
	}
}

func TestPriceCartQuantityBelowOneCountsAsOne(t *testing.T) {
	items := []domain.LineItem{
		{Name: "Tea", UnitPrice: dec("30"), Quantity: 0},
	}
	got := PriceCart(items, decimal.Zero)
	if !got.Subtotal.Equal(dec("30")) {
		t.Fatalf("subtotal = %s, want 30", got.Subtotal)
	}
}

func TestPriceCartSubtotalIndependentOfItemOrder(t *testing.T) {
	a := domain.LineItem{Name: "A", UnitPrice: dec("12.50"), Quantity: 3, Discount: dec("0.50")}
	b := domain.LineItem{Name: "B", UnitPrice: dec("7.25"), Quantity: 2}
	c := domain.LineItem{Name: "C", UnitPrice: dec("99.99"), Quantity: 1, Discount: dec("9.99")}

	forward := PriceCart([]domain.LineItem{a, b, c}, dec("5"))
	reversed := PriceCart([]domain.LineItem{c, b, a}, dec("5"))
	if !forward.Subtotal.Equal(reversed.Subtotal) || !forward.Total.Equal(reversed.Total) {
		t.Fatalf("totals differ across permutations: %+v vs %+v", forward, reversed)
	}
}

func TestPriceCartIdempotent(t *testing.T) {
	items := []domain.LineItem{
		{Name: "A", UnitPrice: dec("10"), Quantity: 2, Discount: dec("1")},
	}
	first := PriceCart(items, dec("3"))
	second := PriceCart(items, dec("3"))
	if !first.Total.Equal(second.Total) || !first.Subtotal.Equal(second.Subtotal) {
		t.Fatalf("repeated pricing diverged: %+v vs %+v", first, second)
	}
}

func TestPriceCartEmptyCart(t *testing.T) {
	got := PriceCart(nil, decimal.Zero)
	if !got.Subtotal.IsZero() || !got.Total.IsZero() {
		t.Fatalf("expected zero totals for empty cart, got %+v", got)
	}
}

func TestNewInvoiceFreezesLinesAndRounds(t *testing.T) {
	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, domain.ReferenceZone)
	items := []domain.LineItem{
		{ProductID: "p1", Name: "Soap", UnitPrice: dec("100"), Quantity: 2, Discount: dec("10")},
	}
	inv := NewInvoice("INV-1", "Customer", items, decimal.Zero, issued)

	if inv.ID != "INV-1" || inv.CustomerName != "Customer" {
		t.Fatalf("unexpected header fields %+v", inv)
	}
	if !inv.Subtotal.Equal(dec("180")) || !inv.Tax.Equal(dec("9")) || !inv.Total.Equal(dec("189")) {
		t.Fatalf("unexpected totals %+v", inv)
	}
	if len(inv.Lines) != 1 || inv.Lines[0].Name != "Soap" {
		t.Fatalf("unexpected lines %+v", inv.Lines)
	}

	// Mutating the source slice must not change the frozen copy.
	items[0].Name = "changed"
	if inv.Lines[0].Name != "Soap" {
		t.Fatalf("invoice lines share backing array with cart")
	}
}

func TestNewInvoiceIDUsesCheckoutMillis(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	if got := NewInvoiceID(now); got != "INV-1700000000000" {
		t.Fatalf("id = %q", got)
	}
}
