package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"posbill/internal/cart"
	"posbill/internal/catalog"
	"posbill/internal/domain"
	"posbill/internal/snapshot"
)

type stubRemote struct {
	created chan domain.Invoice
}

func (s *stubRemote) Create(_ context.Context, inv domain.Invoice) error {
	select {
	case s.created <- inv:
	default:
	}
	return nil
}

func (s *stubRemote) List(context.Context, string) ([]domain.Invoice, error) {
	return nil, nil
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newSession(t *testing.T) (*Session, *stubRemote) {
	t.Helper()
	remote := &stubRemote{created: make(chan domain.Invoice, 8)}
	s := New(snapshot.NewMemory(), remote, nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, remote
}

func TestCheckoutEmptyCart(t *testing.T) {
	s, _ := newSession(t)
	if _, err := s.Checkout(context.Background(), cart.New(), "Asha"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCheckoutPricesCartAndClearsIt(t *testing.T) {
	ctx := context.Background()
	s, remote := newSession(t)

	p, err := s.Catalog.Add(ctx, catalog.ProductInput{Name: "Soap", Price: dec("100"), Stock: 10})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	c := cart.New()
	c.Add(*p)
	c.Add(*p)
	if err := c.SetDiscount(p.ID, dec("10")); err != nil {
		t.Fatalf("SetDiscount: %v", err)
	}

	inv, err := s.Checkout(ctx, c, "")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !inv.Subtotal.Equal(dec("180")) || !inv.Tax.Equal(dec("9")) || !inv.Total.Equal(dec("189")) {
		t.Fatalf("unexpected totals %+v", inv)
	}
	if inv.CustomerName != "Walk-in Customer" {
		t.Fatalf("customerName = %q", inv.CustomerName)
	}
	if !c.Empty() {
		t.Fatalf("cart not cleared after checkout")
	}

	// Local list sees the invoice immediately.
	if got := s.Invoices.List(""); len(got) != 1 || got[0].ID != inv.ID {
		t.Fatalf("invoice not visible locally: %+v", got)
	}

	// The remote write fires in the background.
	select {
	case sent := <-remote.created:
		if sent.ID != inv.ID {
			t.Fatalf("remote received %s, want %s", sent.ID, inv.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("remote write never fired")
	}
}

func TestStatsReflectsCheckouts(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)

	p, err := s.Catalog.Add(ctx, catalog.ProductInput{Name: "Tea", Price: dec("100")})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	c := cart.New()
	c.Add(*p)
	if _, err := s.Checkout(ctx, c, "Asha"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	got := s.Stats(time.Now())
	if got.TotalInvoices != 1 {
		t.Fatalf("totalInvoices = %d", got.TotalInvoices)
	}
	if !got.TotalRevenue.Equal(dec("105")) || !got.TodaySales.Equal(dec("105")) {
		t.Fatalf("unexpected summary %+v", got)
	}
}
