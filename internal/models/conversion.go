package models

// ConversionLog records milk turned into a dairy product.
// FromProduct and ToProduct are product names, not ids.
type ConversionLog struct {
	ID           string      `json:"id"`
	Date         string      `json:"date"`
	FromProduct  ProductType `json:"fromProduct"`
	FromQuantity int         `json:"fromQuantity"`
	ToProduct    string      `json:"toProduct"`
	ToQuantity   int         `json:"toQuantity"`
	StaffID      string      `json:"staffId"`
}

// NewConversion is the input of conversion logging.
type NewConversion struct {
	FromProduct  ProductType `json:"fromProduct"`
	FromQuantity int         `json:"fromQuantity"`
	ToProduct    string      `json:"toProduct"`
	ToQuantity   int         `json:"toQuantity"`
	StaffID      string      `json:"staffId"`
}
