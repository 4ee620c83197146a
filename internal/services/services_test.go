package services

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/diewo77/go-dairy/internal/metrics"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/pricing"
	"github.com/diewo77/go-dairy/internal/repository"
	"github.com/diewo77/go-dairy/internal/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var quiet = log.New(&bytes.Buffer{}, "", 0)

func newRepo(t *testing.T) (*repository.Repository, *store.MemoryBackend) {
	t.Helper()
	mem := store.NewMemoryBackend()
	s := store.New(mem, store.WithLogger(quiet))
	r := repository.Open(context.Background(), s,
		repository.WithClock(func() time.Time { return time.Date(2024, 8, 15, 9, 0, 0, 0, time.UTC) }),
		repository.WithRand(rand.New(rand.NewPCG(7, 7))),
		repository.WithLogger(quiet),
	)
	return r, mem
}

func stockOf(t *testing.T, r *repository.Repository, id string) int {
	t.Helper()
	p, err := r.GetProduct(context.Background(), id)
	if err != nil {
		t.Fatalf("get %s: %v", id, err)
	}
	return p.Stock
}

func TestCreateInvoiceWalkIn(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)
	m := metrics.New()
	svc := NewInvoiceService(r, pricing.DefaultTable(), m)
	svc.logger = quiet

	before := stockOf(t, r, "cow-milk")
	inv, err := svc.CreateInvoice(ctx, models.NewInvoice{
		CustomerName: "Walk-in",
		Items:        []models.LineRequest{{ProductID: "cow-milk", Quantity: 2}},
		SubmittedBy:  "S002",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.Total != 100 {
		t.Fatalf("expected total 100 got %v", inv.Total)
	}
	if inv.ID != "I002" || inv.Date != "2024-08-15" {
		t.Fatalf("unexpected id/date %s %s", inv.ID, inv.Date)
	}
	if got := stockOf(t, r, "cow-milk"); got != before-2 {
		t.Fatalf("expected stock %d got %d", before-2, got)
	}
	if list := r.ListInvoices(ctx); list[0].ID != inv.ID {
		t.Fatalf("new invoice should be first, got %s", list[0].ID)
	}
	if n, err := testutil.GatherAndCount(m.Registry(), "dairy_stock_movements_total"); err != nil || n != 1 {
		t.Fatalf("expected one movement series, got %d (%v)", n, err)
	}
}

func TestCreateInvoiceDefaultsCustomerAndAllowsNegativeStock(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)
	svc := NewInvoiceService(r, pricing.DefaultTable(), nil)
	svc.logger = quiet

	before := stockOf(t, r, "paneer")
	qty := before + 5
	inv, err := svc.CreateInvoice(ctx, models.NewInvoice{
		Items:       []models.LineRequest{{ProductID: "paneer", Quantity: qty}},
		SubmittedBy: "S002",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.CustomerName != WalkInCustomer {
		t.Fatalf("expected walk-in customer got %q", inv.CustomerName)
	}
	if got := stockOf(t, r, "paneer"); got != -5 {
		t.Fatalf("expected stock -5 got %d", got)
	}
	if inv.Total != float64(qty)*350 {
		t.Fatalf("unexpected total %v", inv.Total)
	}
}

func TestCreateInvoiceFreezesPrices(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)
	svc := NewInvoiceService(r, pricing.DefaultTable(), nil)
	svc.logger = quiet

	inv, err := svc.CreateInvoice(ctx, models.NewInvoice{
		Items: []models.LineRequest{
			{ProductID: "cow-milk", Quantity: 3},
			{ProductID: "curd", Quantity: 1},
		},
		SubmittedBy: "S001",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	svc.SetPrices(svc.Prices().With("cow-milk", 99))

	stored, err := r.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Total != 230 || stored.Items[0].Price != 50 {
		t.Fatalf("stored invoice changed with price table: %+v", stored)
	}
	if stored.Total != models.SumItems(stored.Items) {
		t.Fatalf("total does not match items")
	}
}

func TestCreateInvoiceUnknownProductKeepsStock(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)
	svc := NewInvoiceService(r, pricing.DefaultTable(), nil)
	svc.logger = quiet

	before := r.ListProducts(ctx)
	inv, err := svc.CreateInvoice(ctx, models.NewInvoice{
		Items:       []models.LineRequest{{ProductID: "yak-cheese", Quantity: 4}},
		SubmittedBy: "S002",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.Total != 0 || inv.Items[0].Price != 0 {
		t.Fatalf("unknown product should price at 0: %+v", inv)
	}
	after := r.ListProducts(ctx)
	for i := range before {
		if before[i].Stock != after[i].Stock {
			t.Fatalf("stock of %s changed", before[i].ID)
		}
	}
}

func TestCreateInvoiceValidation(t *testing.T) {
	ctx := context.Background()
	r, mem := newRepo(t)
	svc := NewInvoiceService(r, pricing.DefaultTable(), nil)
	svc.logger = quiet

	cases := []struct {
		name string
		in   models.NewInvoice
		kind models.ErrorKind
	}{
		{"no items", models.NewInvoice{SubmittedBy: "S002"}, models.KindValidation},
		{"zero quantity", models.NewInvoice{SubmittedBy: "S002", Items: []models.LineRequest{{ProductID: "curd"}}}, models.KindValidation},
		{"no submitter", models.NewInvoice{Items: []models.LineRequest{{ProductID: "curd", Quantity: 1}}}, models.KindValidation},
		{"unknown submitter", models.NewInvoice{SubmittedBy: "S999", Items: []models.LineRequest{{ProductID: "curd", Quantity: 1}}}, models.KindNotFound},
	}
	snapshot, _, _ := mem.Read(ctx, "yd-"+repository.KeyInvoices)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateInvoice(ctx, tc.in)
			if models.KindOf(err) != tc.kind {
				t.Fatalf("expected %s got %v", tc.kind, err)
			}
		})
	}
	now, _, _ := mem.Read(ctx, "yd-"+repository.KeyInvoices)
	if !bytes.Equal(snapshot, now) {
		t.Fatalf("rejected invoices must not be persisted")
	}
	if len(r.ListInvoices(ctx)) != 1 {
		t.Fatalf("rejected invoices must not be stored")
	}
}

func TestLogConversionMovesStockByName(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)
	m := metrics.New()
	svc := NewProductionService(r, m)
	svc.logger = quiet

	milk, paneer := stockOf(t, r, "cow-milk"), stockOf(t, r, "paneer")
	entry, err := svc.LogConversion(ctx, models.NewConversion{
		FromProduct:  models.TypeCowMilk,
		FromQuantity: 20,
		ToProduct:    "Paneer",
		ToQuantity:   4,
		StaffID:      "S003",
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if entry.ID != "C002" || entry.Date != "2024-08-15" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if got := stockOf(t, r, "cow-milk"); got != milk-20 {
		t.Fatalf("cow milk: expected %d got %d", milk-20, got)
	}
	if got := stockOf(t, r, "paneer"); got != paneer+4 {
		t.Fatalf("paneer: expected %d got %d", paneer+4, got)
	}
	if logs := r.ListConversionLogs(ctx); logs[0].ID != "C002" {
		t.Fatalf("new log should be first")
	}
	if n, err := testutil.GatherAndCount(m.Registry(), "dairy_product_stock"); err != nil || n != 11 {
		t.Fatalf("expected 11 stock gauges, got %d (%v)", n, err)
	}
}

// Conversions resolve products by name while invoices use ids; an id here is not a match.
func TestLogConversionUnresolvedNameKeepsLogOnly(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)
	svc := NewProductionService(r, nil)
	svc.logger = quiet

	before := r.ListProducts(ctx)
	_, err := svc.LogConversion(ctx, models.NewConversion{
		FromProduct:  models.TypeBuffaloMilk,
		FromQuantity: 10,
		ToProduct:    "buffalo-ghee",
		ToQuantity:   1,
		StaffID:      "S003",
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if n := len(r.ListConversionLogs(ctx)); n != 2 {
		t.Fatalf("expected log to be recorded, have %d", n)
	}
	after := r.ListProducts(ctx)
	for i := range before {
		if before[i].Stock != after[i].Stock {
			t.Fatalf("stock of %s changed", before[i].ID)
		}
	}
}

func TestLogConversionValidation(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)
	svc := NewProductionService(r, nil)
	svc.logger = quiet

	_, err := svc.LogConversion(ctx, models.NewConversion{
		FromProduct:  models.TypeDairyProduct,
		FromQuantity: 0,
		StaffID:      "S003",
	})
	var verr *models.Error
	if !errors.As(err, &verr) || verr.Kind != models.KindValidation {
		t.Fatalf("expected validation error got %v", err)
	}
	for _, field := range []string{"fromProduct", "fromQuantity", "toProduct", "toQuantity"} {
		if _, ok := verr.Violations[field]; !ok {
			t.Errorf("missing violation for %s", field)
		}
	}

	_, err = svc.LogConversion(ctx, models.NewConversion{
		FromProduct: models.TypeCowMilk, FromQuantity: 1, ToProduct: "Paneer", ToQuantity: 1, StaffID: "S404",
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)
	svc := NewDashboardService(r)

	data := svc.Dashboard(ctx, 7)
	if len(data.DailyRecords) != 7 || data.DailyRecords[6].Date != "2024-08-15" {
		t.Fatalf("unexpected records %+v", data.DailyRecords)
	}
	want := models.DeliveryStats{Delivered: 1, Pending: 2, Returned: 1}
	if data.DeliveryStats != want {
		t.Fatalf("expected %+v got %+v", want, data.DeliveryStats)
	}
	if data.Revenue != 100 {
		t.Fatalf("expected revenue 100 got %v", data.Revenue)
	}
	if all := svc.Dashboard(ctx, 0); len(all.DailyRecords) != 366 {
		t.Fatalf("expected every record, got %d", len(all.DailyRecords))
	}
}
