package models

import "time"

// Unit is the measuring unit a product is sold in.
type Unit string

const (
	UnitLitre Unit = "Ltr"
	UnitKilo  Unit = "Kg"
	UnitPiece Unit = "Pcs"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitLitre, UnitKilo, UnitPiece:
		return true
	}
	return false
}

// ProductType groups products; the two milk types are the only valid conversion sources.
type ProductType string

const (
	TypeCowMilk      ProductType = "Cow Milk"
	TypeBuffaloMilk  ProductType = "Buffalo Milk"
	TypeDairyProduct ProductType = "Dairy Product"
	TypeOther        ProductType = "Other"
)

func (t ProductType) Valid() bool {
	switch t {
	case TypeCowMilk, TypeBuffaloMilk, TypeDairyProduct, TypeOther:
		return true
	}
	return false
}

// IsMilk reports whether t is a raw milk type.
func (t ProductType) IsMilk() bool {
	return t == TypeCowMilk || t == TypeBuffaloMilk
}

// Product is a catalog entry. Stock is the only mutable field and may go negative.
type Product struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Unit  Unit        `json:"unit"`
	Type  ProductType `json:"type"`
	Stock int         `json:"stock"`
}

// Day formats t as the YYYY-MM-DD label used on invoices, logs and salary records.
func Day(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ValidMonth reports whether s is a YYYY-MM label.
func ValidMonth(s string) bool {
	if len(s) != 7 {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}
