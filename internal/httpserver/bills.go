package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"posbill/internal/domain"
)

// billRequest is the loosely-shaped write body. Only id and total are
// mandatory; everything else is defaulted here, before a domain Invoice is
// constructed.
type billRequest struct {
	ID            string            `json:"id"`
	CustomerName  string            `json:"customerName"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	OrderDiscount decimal.Decimal   `json:"orderDiscount"`
	Tax           decimal.Decimal   `json:"tax"`
	Total         *decimal.Decimal  `json:"total"`
	Items         []domain.LineItem `json:"items"`
	IssuedAt      *time.Time        `json:"issuedAt"`
}

const defaultCustomerName = "Walk-in Customer"

func (r billRequest) toInvoice(now time.Time) domain.Invoice {
	customer := strings.TrimSpace(r.CustomerName)
	if customer == "" {
		customer = defaultCustomerName
	}
	orderDiscount := r.OrderDiscount
	if orderDiscount.IsNegative() {
		orderDiscount = decimal.Zero
	}
	tax := r.Tax
	if tax.IsNegative() {
		tax = decimal.Zero
	}
	issuedAt := now
	if r.IssuedAt != nil {
		issuedAt = *r.IssuedAt
	}
	return domain.Invoice{
		ID:            r.ID,
		CustomerName:  customer,
		Lines:         r.Items,
		Subtotal:      r.Subtotal,
		OrderDiscount: orderDiscount,
		Tax:           tax,
		Total:         *r.Total,
		IssuedAt:      issuedAt,
	}
}

func listBillsHandler(logger *log.Logger, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Bills == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database configuration missing"})
			return
		}
		term := c.Query("search")
		invoices, err := deps.Bills.Search(c.Request.Context(), term)
		if err != nil {
			logger.Printf("bills: search term=%q error=%v", term, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if invoices == nil {
			invoices = []domain.Invoice{}
		}
		c.JSON(http.StatusOK, invoices)
	}
}

func createBillHandler(logger *log.Logger, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Bills == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database configuration missing"})
			return
		}
		var req billRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if strings.TrimSpace(req.ID) == "" || req.Total == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		stored, err := deps.Bills.Insert(c.Request.Context(), req.toInvoice(time.Now().UTC()))
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateID) {
				c.JSON(http.StatusConflict, gin.H{"error": "Invoice already exists"})
				return
			}
			logger.Printf("bills: insert id=%s error=%v", req.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusCreated, stored)
	}
}
