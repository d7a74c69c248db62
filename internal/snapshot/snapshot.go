package snapshot

import "context"

// Namespace keys for the two collections held by the local store. Each key
// addresses one whole-collection blob that is rewritten in full on every
// mutation.
const (
	ProductsKey = "pos:products"
	InvoicesKey = "pos:invoices"
)

// Store is a key-addressed blob store for full-collection snapshots. Load
// returns domain.ErrNotFound when the key has never been written.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
}
