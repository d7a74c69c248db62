package bill

import (
	"context"

	"posbill/internal/domain"
)

// Repository is the remote authority's invoice collection. Inserts are
// insert-only: a duplicate id is a conflict, never an upsert.
type Repository interface {
	Insert(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error)
	Search(ctx context.Context, term string) ([]domain.Invoice, error)
}
