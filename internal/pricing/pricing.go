// Package pricing resolves unit prices for invoice lines.
package pricing

import (
	"maps"

	"github.com/diewo77/go-dairy/internal/models"
)

// Table maps a product id to its unit price.
type Table map[string]float64

// DefaultTable returns the shop's price list.
func DefaultTable() Table {
	return Table{
		"cow-milk":     50,
		"buffalo-milk": 60,
		"curd":         80,
		"buttermilk":   40,
		"buffalo-ghee": 600,
		"cow-ghee":     700,
		"paneer":       350,
		"butter":       500,
		"mustard-oil":  150,
		"mawa":         400,
		"lassi":        50,
	}
}

// UnitPrice returns the price of id, 0 when the id is not listed.
func (t Table) UnitPrice(id string) float64 {
	return t[id]
}

// With returns a copy of t with id priced at price.
func (t Table) With(id string, price float64) Table {
	out := maps.Clone(t)
	if out == nil {
		out = Table{}
	}
	out[id] = price
	return out
}

// Price freezes the current unit price on every line and returns the invoice total.
func (t Table) Price(lines []models.LineRequest) ([]models.InvoiceItem, float64) {
	items := make([]models.InvoiceItem, len(lines))
	for i, l := range lines {
		items[i] = models.InvoiceItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     t.UnitPrice(l.ProductID),
		}
	}
	return items, models.SumItems(items)
}
