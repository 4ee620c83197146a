// Package metrics exposes the Prometheus collectors of the dairy service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/diewo77/go-dairy/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	operations      *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	stock           *prometheus.GaugeVec
	persistFailures prometheus.Counter
	stockMovements  *prometheus.CounterVec
}

// New registers every collector on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairy_operations_total",
				Help: "Operations served, by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dairy_operation_duration_seconds",
				Help:    "Time taken to serve an operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		stock: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dairy_product_stock",
				Help: "Current stock per product",
			},
			[]string{"product"},
		),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dairy_persistence_failures_total",
			Help: "Record store writes that failed and were absorbed",
		}),
		stockMovements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairy_stock_movements_total",
				Help: "Stock movements applied by the ledger, by reason",
			},
			[]string{"reason"},
		),
	}
	m.registry.MustRegister(m.operations, m.duration, m.stock, m.persistFailures, m.stockMovements)
	return m
}

// Registry returns the registry backing Handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveOperation(operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, status).Inc()
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetStock refreshes the stock gauge of every product.
func (m *Metrics) SetStock(products []models.Product) {
	if m == nil {
		return
	}
	for _, p := range products {
		m.stock.WithLabelValues(p.ID).Set(float64(p.Stock))
	}
}

func (m *Metrics) StockMoved(reason string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.stockMovements.WithLabelValues(reason).Add(float64(n))
}

func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}
