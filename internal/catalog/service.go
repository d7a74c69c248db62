package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"posbill/internal/domain"
	"posbill/internal/snapshot"
)

// Service owns the product catalog for one operator session. Mutations
// rewrite the whole catalog snapshot. Not safe for concurrent writers; the
// POS runs a single logical operation at a time.
type Service struct {
	store    snapshot.Store
	logger   *log.Logger
	products []domain.Product
}

func New(store snapshot.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{store: store, logger: logger}
}

// Load reads the catalog snapshot at session start. A missing key means a
// fresh install with an empty catalog.
func (s *Service) Load(ctx context.Context) error {
	blob, err := s.store.Load(ctx, snapshot.ProductsKey)
	if errors.Is(err, domain.ErrNotFound) {
		s.products = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(blob, &products); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	s.products = products
	s.logger.Printf("catalog: loaded %d products", len(products))
	return nil
}

type ProductInput struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}
	return nil
}

// Add inserts a new product at the head of the catalog.
func (s *Service) Add(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := domain.Product{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.TrimSpace(in.Category),
		Price:     in.Price,
		Stock:     in.Stock,
		CreatedAt: time.Now().UTC(),
	}
	s.products = append([]domain.Product{p}, s.products...)
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	s.logger.Printf("catalog: added product id=%s name=%s", p.ID, p.Name)
	return &p, nil
}

func (s *Service) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		s.products[i].Name = strings.TrimSpace(in.Name)
		s.products[i].Category = strings.TrimSpace(in.Category)
		s.products[i].Price = in.Price
		s.products[i].Stock = in.Stock
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
		p := s.products[i]
		return &p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *Service) Delete(ctx context.Context, id string) error {
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return s.persist(ctx)
		}
	}
	return domain.ErrNotFound
}

// List returns a copy of the catalog, newest first.
func (s *Service) List() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Search matches the term case-insensitively against product name or
// category. An empty term returns the whole catalog.
func (s *Service) Search(term string) []domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.List()
	}
	var out []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) persist(ctx context.Context) error {
	blob, err := json.Marshal(s.products)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.store.Save(ctx, snapshot.ProductsKey, blob); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
