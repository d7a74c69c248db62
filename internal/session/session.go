package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"posbill/internal/cart"
	"posbill/internal/catalog"
	"posbill/internal/config"
	"posbill/internal/domain"
	"posbill/internal/invoices"
	"posbill/internal/pricing"
	"posbill/internal/remote"
	"posbill/internal/snapshot"
	"posbill/internal/stats"
)

// Session wires the local side of the POS for one operator: the catalog and
// the invoice store share one snapshot store, and checkouts flow through
// the pricing engine into the two-tier invoice store.
type Session struct {
	Catalog  *catalog.Service
	Invoices *invoices.Store
}

// New composes a session from explicit dependencies.
func New(snap snapshot.Store, remoteClient invoices.RemoteClient, logger *log.Logger) *Session {
	return &Session{
		Catalog:  catalog.New(snap, logger),
		Invoices: invoices.New(snap, remoteClient, logger),
	}
}

// Start connects the configured redis snapshot store and bills API, then
// loads both collections. The returned closer releases the redis client.
func Start(ctx context.Context, cfg config.Config, logger *log.Logger) (*Session, func() error, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	s := New(snapshot.NewRedis(client), remote.NewClient(cfg.BillsAPIURL, nil), logger)
	if err := s.Load(ctx); err != nil {
		client.Close()
		return nil, nil, err
	}
	return s, client.Close, nil
}

// Load reads both collection snapshots at session start.
func (s *Session) Load(ctx context.Context) error {
	if err := s.Catalog.Load(ctx); err != nil {
		return err
	}
	return s.Invoices.Load(ctx)
}

// Checkout freezes the cart into an invoice, appends it to the invoice
// store and clears the cart for the next sale. The cart is left untouched
// when the append fails.
func (s *Session) Checkout(ctx context.Context, c *cart.Cart, customerName string) (domain.Invoice, error) {
	if c.Empty() {
		return domain.Invoice{}, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}
	if customerName == "" {
		customerName = "Walk-in Customer"
	}

	now := time.Now().In(domain.ReferenceZone)
	inv := pricing.NewInvoice(pricing.NewInvoiceID(now), customerName, c.Lines(), c.OrderDiscount(), now)
	if err := s.Invoices.Append(ctx, inv); err != nil {
		return domain.Invoice{}, err
	}
	c.Clear()
	return inv, nil
}

// Stats derives the dashboard summary from the local invoice collection.
func (s *Session) Stats(now time.Time) stats.Summary {
	return stats.Compute(s.Invoices.Invoices(), now)
}
