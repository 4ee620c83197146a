// Package ledger applies invoice and conversion events to product stock.
//
// Invoices match products by id, conversions by product name. Stock has no
// floor and may go negative.
package ledger

import (
	"slices"

	"github.com/diewo77/go-dairy/internal/models"
)

// Reason tells why a stock movement happened.
type Reason string

const (
	ReasonInvoice       Reason = "invoice"
	ReasonConversionOut Reason = "conversion_out"
	ReasonConversionIn  Reason = "conversion_in"
)

// Movement is one applied stock change.
type Movement struct {
	ProductID string `json:"productId"`
	Delta     int    `json:"delta"`
	Before    int    `json:"before"`
	After     int    `json:"after"`
	Reason    Reason `json:"reason"`
	Reference string `json:"reference"`
}

func move(products []models.Product, i, delta int, reason Reason, ref string) Movement {
	before := products[i].Stock
	products[i].Stock += delta
	return Movement{
		ProductID: products[i].ID,
		Delta:     delta,
		Before:    before,
		After:     products[i].Stock,
		Reason:    reason,
		Reference: ref,
	}
}

// ApplyInvoice decrements the stock of every line's product. Lines naming an
// unknown product id are skipped.
func ApplyInvoice(products []models.Product, inv models.Invoice) []Movement {
	var moves []Movement
	for _, item := range inv.Items {
		i := slices.IndexFunc(products, func(p models.Product) bool { return p.ID == item.ProductID })
		if i < 0 {
			continue
		}
		moves = append(moves, move(products, i, -item.Quantity, ReasonInvoice, inv.ID))
	}
	return moves
}

// ApplyConversion moves stock from the milk product to the made product, both
// looked up by name. When either name is unknown nothing changes and applied is false.
func ApplyConversion(products []models.Product, c models.ConversionLog) (moves []Movement, applied bool) {
	src := indexByName(products, string(c.FromProduct))
	dst := indexByName(products, c.ToProduct)
	if src < 0 || dst < 0 {
		return nil, false
	}
	moves = append(moves,
		move(products, src, -c.FromQuantity, ReasonConversionOut, c.ID),
		move(products, dst, c.ToQuantity, ReasonConversionIn, c.ID),
	)
	return moves, true
}

func indexByName(products []models.Product, name string) int {
	return slices.IndexFunc(products, func(p models.Product) bool { return p.Name == name })
}
