package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"posbill/internal/domain"
)

// Summary holds the dashboard figures derived from the invoice collection.
type Summary struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalInvoices int             `json:"totalInvoices"`
	TodaySales    decimal.Decimal `json:"todaySales"`
}

// Compute derives summary metrics from a snapshot of the invoice
// collection. "Today" is the civil date of now in the reference zone, so
// two instants an hour apart can land in different buckets. Pure function,
// recomputed on every call.
func Compute(invoices []domain.Invoice, now time.Time) Summary {
	s := Summary{
		TotalRevenue: decimal.Zero,
		TodaySales:   decimal.Zero,
	}
	today := civilDate(now)
	for _, inv := range invoices {
		s.TotalRevenue = s.TotalRevenue.Add(inv.Total)
		s.TotalInvoices++
		if civilDate(inv.IssuedAt) == today {
			s.TodaySales = s.TodaySales.Add(inv.Total)
		}
	}
	return s
}

func civilDate(t time.Time) string {
	return t.In(domain.ReferenceZone).Format("2006-01-02")
}
