package bill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"posbill/internal/domain"
)

const searchLimit = 50

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Insert(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	lineItems, err := json.Marshal(inv.Lines)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}

	const q = `
INSERT INTO bills (id, customer_name, subtotal, order_discount, tax, total, line_items, issued_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, customer_name, subtotal, order_discount, tax, total, line_items, issued_at
`
	var stored domain.Invoice
	var storedLines []byte
	err = r.pool.QueryRow(ctx, q,
		inv.ID,
		inv.CustomerName,
		inv.Subtotal,
		inv.OrderDiscount,
		inv.Tax,
		inv.Total,
		lineItems,
		inv.IssuedAt,
	).Scan(
		&stored.ID,
		&stored.CustomerName,
		&stored.Subtotal,
		&stored.OrderDiscount,
		&stored.Tax,
		&stored.Total,
		&storedLines,
		&stored.IssuedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Printf("bill repo: insert id=%s duplicate", inv.ID)
			return nil, domain.ErrDuplicateID
		}
		r.logger.Printf("bill repo: insert id=%s error=%v", inv.ID, err)
		return nil, err
	}
	if err := json.Unmarshal(storedLines, &stored.Lines); err != nil {
		return nil, fmt.Errorf("decode line items: %w", err)
	}
	r.logger.Printf("bill repo: inserted id=%s total=%s", stored.ID, stored.Total)
	return &stored, nil
}

func (r *postgresRepo) Search(ctx context.Context, term string) ([]domain.Invoice, error) {
	q := `
SELECT id, customer_name, subtotal, order_discount, tax, total, line_items, issued_at
FROM bills
ORDER BY issued_at DESC
LIMIT $1
`
	args := []interface{}{searchLimit}
	if term != "" {
		q = `
SELECT id, customer_name, subtotal, order_discount, tax, total, line_items, issued_at
FROM bills
WHERE customer_name ILIKE $1 OR id ILIKE $1
ORDER BY issued_at DESC
LIMIT $2
`
		args = []interface{}{"%" + term + "%", searchLimit}
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("bill repo: search term=%q error=%v", term, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		var lines []byte
		if err := rows.Scan(&inv.ID, &inv.CustomerName, &inv.Subtotal, &inv.OrderDiscount, &inv.Tax, &inv.Total, &lines, &inv.IssuedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(lines, &inv.Lines); err != nil {
			return nil, fmt.Errorf("decode line items for %s: %w", inv.ID, err)
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("bill repo: search rows term=%q error=%v", term, err)
		return nil, err
	}
	r.logger.Printf("bill repo: search term=%q count=%d", term, len(result))
	return result, nil
}
