package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"posbill/internal/domain"
)

// Client talks to the bills API, the system of record for invoices. It
// carries no retry policy and no timeout of its own; the injected
// http.Client's defaults apply.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// List fetches up to 50 invoices matching the search term, newest first.
func (c *Client) List(ctx context.Context, term string) ([]domain.Invoice, error) {
	endpoint := c.baseURL + "/api/bills"
	if term != "" {
		endpoint += "?search=" + url.QueryEscape(term)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode)
	}
	var invoices []domain.Invoice
	if err := json.NewDecoder(resp.Body).Decode(&invoices); err != nil {
		return nil, fmt.Errorf("decode bills: %w", err)
	}
	return invoices, nil
}

// Create stores one invoice remotely. The remote side is insert-only: a
// duplicate id comes back as ErrDuplicateID, never an upsert.
func (c *Client) Create(ctx context.Context, inv domain.Invoice) error {
	body, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encode bill: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/bills", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}
	return nil
}

func statusError(code int) error {
	switch code {
	case http.StatusConflict:
		return domain.ErrDuplicateID
	case http.StatusBadRequest:
		return domain.ErrValidation
	case http.StatusMethodNotAllowed:
		return domain.ErrNotAllowed
	default:
		return fmt.Errorf("%w: status %d", domain.ErrRemoteUnavailable, code)
	}
}
