package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"posbill/internal/domain"
	"posbill/internal/snapshot"
)

// listLimit caps how many invoices a search returns, locally and remotely.
const listLimit = 50

// RemoteClient is the system-of-record side of the two-tier store.
type RemoteClient interface {
	Create(ctx context.Context, inv domain.Invoice) error
	List(ctx context.Context, term string) ([]domain.Invoice, error)
}

// Store owns the invoice collection for one operator session. Appends are
// optimistic: the invoice lands in the local snapshot synchronously and is
// forwarded to the remote authority in the background. A failed remote
// write is logged and dropped, never rolled back locally and never
// resubmitted, so the remote store may lag the local cache.
type Store struct {
	local    snapshot.Store
	remote   RemoteClient
	logger   *log.Logger
	invoices []domain.Invoice
}

func New(local snapshot.Store, remote RemoteClient, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{local: local, remote: remote, logger: logger}
}

// Load reads the invoice collection snapshot at session start.
func (s *Store) Load(ctx context.Context) error {
	blob, err := s.local.Load(ctx, snapshot.InvoicesKey)
	if errors.Is(err, domain.ErrNotFound) {
		s.invoices = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("load invoices: %w", err)
	}
	var invoices []domain.Invoice
	if err := json.Unmarshal(blob, &invoices); err != nil {
		return fmt.Errorf("decode invoices: %w", err)
	}
	s.invoices = invoices
	s.logger.Printf("invoices: loaded %d from snapshot", len(invoices))
	return nil
}

// Append validates the invoice, inserts it at the head of the local
// collection, rewrites the snapshot, then fires the remote write without
// waiting for it. Duplicate ids are rejected in both tiers.
func (s *Store) Append(ctx context.Context, inv domain.Invoice) error {
	if strings.TrimSpace(inv.ID) == "" {
		return fmt.Errorf("%w: invoice id required", domain.ErrValidation)
	}
	for _, existing := range s.invoices {
		if existing.ID == inv.ID {
			return domain.ErrDuplicateID
		}
	}

	s.invoices = append([]domain.Invoice{inv}, s.invoices...)
	if err := s.persist(ctx); err != nil {
		s.invoices = s.invoices[1:]
		return err
	}

	// Fire and forget. The caller's context may end with the request that
	// triggered the append, so the background write runs detached.
	go func() {
		if err := s.remote.Create(context.Background(), inv); err != nil {
			s.logger.Printf("invoices: remote save failed id=%s err=%v", inv.ID, err)
		}
	}()

	return nil
}

// List searches the local cache: case-insensitive substring match on
// customer name or invoice id, at most 50 results, most recently issued
// first with ties kept in insertion order.
func (s *Store) List(term string) []domain.Invoice {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []domain.Invoice
	for _, inv := range s.invoices {
		if term == "" || strings.Contains(strings.ToLower(inv.CustomerName), term) ||
			strings.Contains(strings.ToLower(inv.ID), term) {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IssuedAt.After(out[j].IssuedAt)
	})
	if len(out) > listLimit {
		out = out[:listLimit]
	}
	return out
}

// ListRemote queries the remote authority in a single round trip. Failures
// surface to the caller so the UI can show a load-failed state; an invoice
// appended moments ago may be missing if its background write has not
// landed yet.
func (s *Store) ListRemote(ctx context.Context, term string) ([]domain.Invoice, error) {
	return s.remote.List(ctx, term)
}

// Invoices returns a copy of the local collection, newest first.
func (s *Store) Invoices() []domain.Invoice {
	out := make([]domain.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

func (s *Store) persist(ctx context.Context) error {
	blob, err := json.Marshal(s.invoices)
	if err != nil {
		return fmt.Errorf("encode invoices: %w", err)
	}
	if err := s.local.Save(ctx, snapshot.InvoicesKey, blob); err != nil {
		return fmt.Errorf("save invoices: %w", err)
	}
	return nil
}
