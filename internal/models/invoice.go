package models

// Invoice is immutable once created; Items carry the unit price at sale time.
type Invoice struct {
	ID           string        `json:"id"`
	CustomerName string        `json:"customerName"`
	Date         string        `json:"date"`
	Items        []InvoiceItem `json:"items"`
	Total        float64       `json:"total"`
	SubmittedBy  string        `json:"submittedBy"`
}

// InvoiceItem is one priced line of an invoice.
type InvoiceItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Amount is quantity times unit price.
func (item InvoiceItem) Amount() float64 {
	return float64(item.Quantity) * item.Price
}

// SumItems totals the line amounts.
func SumItems(items []InvoiceItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount()
	}
	return total
}

// LineRequest is an unpriced invoice line as submitted by a caller.
type LineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// NewInvoice is the input of invoice creation. Prices are never supplied by the caller.
type NewInvoice struct {
	CustomerName string        `json:"customerName"`
	Items        []LineRequest `json:"items"`
	SubmittedBy  string        `json:"submittedBy"`
}
