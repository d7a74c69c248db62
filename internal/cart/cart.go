package cart

import (
	"github.com/shopspring/decimal"

	"posbill/internal/domain"
)

// Cart is the mutable, in-progress collection of line items before checkout
// freezes it into an invoice. Line order follows first insertion so the
// receipt reproduces what the operator saw.
type Cart struct {
	lines         []domain.LineItem
	orderDiscount decimal.Decimal
}

func New() *Cart {
	return &Cart{}
}

// Add puts one unit of the product into the cart. Adding a product already
// present bumps its quantity instead of creating a second line. Name and
// price are snapshotted from the product at this moment.
func (c *Cart) Add(p domain.Product) {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, domain.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		Discount:  decimal.Zero,
	})
}

// SetQuantity updates a line's quantity, clamping to a minimum of one.
func (c *Cart) SetQuantity(productID string, qty int) error {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			if qty < 1 {
				qty = 1
			}
			c.lines[i].Quantity = qty
			return nil
		}
	}
	return domain.ErrNotFound
}

// SetDiscount updates a line's per-unit discount, clamping to zero.
func (c *Cart) SetDiscount(productID string, d decimal.Decimal) error {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			if d.IsNegative() {
				d = decimal.Zero
			}
			c.lines[i].Discount = d
			return nil
		}
	}
	return domain.ErrNotFound
}

// SetOrderDiscount sets the order-level discount, clamping to zero.
func (c *Cart) SetOrderDiscount(d decimal.Decimal) {
	if d.IsNegative() {
		d = decimal.Zero
	}
	c.orderDiscount = d
}

func (c *Cart) OrderDiscount() decimal.Decimal {
	return c.orderDiscount
}

func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []domain.LineItem {
	out := make([]domain.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Clear resets the cart for a new sale.
func (c *Cart) Clear() {
	c.lines = nil
	c.orderDiscount = decimal.Zero
}
