package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/go-dairy/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveOperation("login", "ok", time.Millisecond)
	m.SetStock([]models.Product{{ID: "curd", Stock: 3}})
	m.StockMoved("invoice", 1)
	m.PersistFailed()
}

func TestCollectors(t *testing.T) {
	m := New()
	m.ObserveOperation("create_invoice", "ok", 5*time.Millisecond)
	m.ObserveOperation("create_invoice", "ok", 5*time.Millisecond)
	m.SetStock([]models.Product{{ID: "cow-milk", Stock: 98}, {ID: "paneer", Stock: -2}})
	m.StockMoved("conversion", 2)
	m.PersistFailed()

	if got := testutil.ToFloat64(m.operations.WithLabelValues("create_invoice", "ok")); got != 2 {
		t.Fatalf("expected 2 operations got %v", got)
	}
	if got := testutil.ToFloat64(m.stock.WithLabelValues("paneer")); got != -2 {
		t.Fatalf("expected paneer stock -2 got %v", got)
	}
	if got := testutil.ToFloat64(m.stockMovements.WithLabelValues("conversion")); got != 2 {
		t.Fatalf("expected 2 movements got %v", got)
	}
	if got := testutil.ToFloat64(m.persistFailures); got != 1 {
		t.Fatalf("expected 1 failure got %v", got)
	}

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `dairy_product_stock{product="cow-milk"} 98`) {
		t.Fatalf("stock gauge missing from exposition:\n%s", rr.Body.String())
	}
}
