package models

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestFormatAndParseID(t *testing.T) {
	tests := []struct {
		prefix string
		seq    int
		want   string
	}{
		{PrefixStaff, 1, "S001"},
		{PrefixSalary, 12, "SR012"},
		{PrefixInvoice, 999, "I999"},
		{PrefixRoute, 1000, "R1000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatID(tt.prefix, tt.seq); got != tt.want {
				t.Fatalf("FormatID() = %q, want %q", got, tt.want)
			}
			n, ok := ParseSeq(tt.prefix, tt.want)
			if !ok || n != tt.seq {
				t.Fatalf("ParseSeq() = %d,%v, want %d", n, ok, tt.seq)
			}
		})
	}
}

func TestParseSeq_RejectsOtherPrefixes(t *testing.T) {
	for _, id := range []string{"SR001", "S", "Sabc", "D001", ""} {
		if _, ok := ParseSeq(PrefixStaff, id); ok {
			t.Errorf("ParseSeq(S, %q) should fail", id)
		}
	}
}

func TestSumItems(t *testing.T) {
	items := []InvoiceItem{
		{ProductID: "cow-milk", Quantity: 2, Price: 50},
		{ProductID: "paneer", Quantity: 3, Price: 350},
		{ProductID: "unknown", Quantity: 4, Price: 0},
	}
	if got := SumItems(items); got != 1150 {
		t.Fatalf("SumItems() = %v, want 1150", got)
	}
}

func TestEnumValidity(t *testing.T) {
	if !UnitKilo.Valid() || Unit("Gal").Valid() {
		t.Error("unexpected unit validity")
	}
	if !TypeOther.Valid() || ProductType("Goat Milk").Valid() {
		t.Error("unexpected product type validity")
	}
	if !TypeBuffaloMilk.IsMilk() || TypeDairyProduct.IsMilk() {
		t.Error("unexpected milk classification")
	}
	if !RoleManager.Valid() || StaffRole("Cook").Valid() {
		t.Error("unexpected role validity")
	}
	if !DeliveryReturned.Valid() || DeliveryStatus("Lost").Valid() {
		t.Error("unexpected status validity")
	}
}

func TestValidMonthAndDay(t *testing.T) {
	if !ValidMonth("2024-07") || ValidMonth("2024-7") || ValidMonth("July") || ValidMonth("2024-13") {
		t.Error("unexpected month validity")
	}
	ts := time.Date(2024, 7, 3, 23, 30, 0, 0, time.UTC)
	if Day(ts) != "2024-07-03" {
		t.Errorf("Day() = %s", Day(ts))
	}
}

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("update delivery: %w", NotFound("delivery", "D099"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected wrapped NotFound to match sentinel")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatal("NotFound must not match validation")
	}
	if KindOf(err) != KindNotFound {
		t.Fatalf("KindOf() = %s", KindOf(err))
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatal("plain errors have no kind")
	}
	if errors.Is(ErrExpiredToken, ErrInvalidToken) {
		t.Fatal("expired and invalid tokens are distinct kinds")
	}
	inv := InvalidField("reason", "required")
	if inv.Violations["reason"] != "required" || !errors.Is(inv, ErrValidation) {
		t.Fatalf("unexpected invalid error %+v", inv)
	}
	p := Persistence("yd-products", errors.New("disk full"))
	if p.Error() != "persist yd-products: disk full" {
		t.Fatalf("unexpected message %q", p.Error())
	}
}

func TestStaffPublicDropsPassword(t *testing.T) {
	salary := 15000.0
	s := Staff{ID: "S001", Name: "Ramesh Kumar", Role: RoleDelivery, Password: "password1", Salary: &salary}
	p := s.Public()
	if p.ID != "S001" || p.Salary == nil || *p.Salary != salary {
		t.Fatalf("unexpected public view %+v", p)
	}
}
