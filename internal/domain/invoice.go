package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a cart line frozen into an invoice at checkout. Name and unit
// price are copied from the product so later catalog edits cannot alter
// historical invoices.
type LineItem struct {
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
}

// Invoice is the immutable record produced at checkout. Corrections are
// issued as new invoices, never in-place edits.
type Invoice struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customerName"`
	Lines         []LineItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	OrderDiscount decimal.Decimal `json:"orderDiscount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	IssuedAt      time.Time       `json:"issuedAt"`
}
