package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"posbill/internal/catalog"
)

type productSeed struct {
	Name     string
	Category string
	Price    string
	Stock    int
}

// Apply loads a small demo catalog for manual testing. It is idempotent:
// products already present by name are left alone.
func Apply(ctx context.Context, svc *catalog.Service) error {
	products := []productSeed{
		{Name: "Bath Soap", Category: "Toiletries", Price: "40.00", Stock: 120},
		{Name: "Green Tea 250g", Category: "Beverages", Price: "180.00", Stock: 40},
		{Name: "Basmati Rice 1kg", Category: "Grocery", Price: "95.00", Stock: 60},
		{Name: "Notebook A5", Category: "Stationery", Price: "55.00", Stock: 200},
	}

	existing := map[string]bool{}
	for _, p := range svc.List() {
		existing[p.Name] = true
	}

	for _, p := range products {
		if existing[p.Name] {
			continue
		}
		if _, err := svc.Add(ctx, catalog.ProductInput{
			Name:     p.Name,
			Category: p.Category,
			Price:    decimal.RequireFromString(p.Price),
			Stock:    p.Stock,
		}); err != nil {
			return fmt.Errorf("add product %s: %w", p.Name, err)
		}
	}

	return nil
}
