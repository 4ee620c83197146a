package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/diewo77/go-dairy/internal/ledger"
	"github.com/diewo77/go-dairy/internal/metrics"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/pricing"
	"github.com/diewo77/go-dairy/internal/repository"
	"github.com/diewo77/go-dairy/validation"
)

// WalkInCustomer is used when an invoice is created without a customer name.
const WalkInCustomer = "Walk-in"

type InvoiceService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *log.Logger

	mu     sync.RWMutex
	prices pricing.Table
}

func NewInvoiceService(repo *repository.Repository, prices pricing.Table, m *metrics.Metrics) *InvoiceService {
	return &InvoiceService{repo: repo, prices: prices, metrics: m, logger: log.Default()}
}

// Prices returns the table used for new invoices.
func (s *InvoiceService) Prices() pricing.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prices
}

// SetPrices replaces the price table. Existing invoices keep their frozen prices.
func (s *InvoiceService) SetPrices(t pricing.Table) {
	s.mu.Lock()
	s.prices = t
	s.mu.Unlock()
}

// CreateInvoice prices the lines, decrements stock and stores the invoice in one step.
func (s *InvoiceService) CreateInvoice(ctx context.Context, in models.NewInvoice) (models.Invoice, error) {
	v := make(validation.Violations)
	validation.Required("submittedBy", in.SubmittedBy, v)
	if len(in.Items) == 0 {
		v.Add("items", "required")
	}
	for i, item := range in.Items {
		validation.Required(fmt.Sprintf("items[%d].productId", i), item.ProductID, v)
		validation.PositiveInt(fmt.Sprintf("items[%d].quantity", i), item.Quantity, v)
	}
	if !v.Empty() {
		return models.Invoice{}, models.Invalid(v)
	}
	customer := strings.TrimSpace(in.CustomerName)
	if customer == "" {
		customer = WalkInCustomer
	}
	prices := s.Prices()

	var inv models.Invoice
	err := s.repo.Mutate(ctx, func(tx *repository.Tx) error {
		if _, ok := tx.FindStaff(in.SubmittedBy); !ok {
			return models.NotFound("staff", in.SubmittedBy)
		}
		items, total := prices.Price(in.Items)
		inv = models.Invoice{
			ID:           tx.NextID(models.PrefixInvoice),
			CustomerName: customer,
			Date:         tx.Today(),
			Items:        items,
			Total:        total,
			SubmittedBy:  in.SubmittedBy,
		}
		moves := ledger.ApplyInvoice(tx.Products, inv)
		tx.PrependInvoice(inv)
		s.logMoves(moves)
		s.metrics.StockMoved(string(ledger.ReasonInvoice), len(moves))
		s.metrics.SetStock(tx.Products)
		return nil
	})
	if err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

func (s *InvoiceService) logMoves(moves []ledger.Movement) {
	for _, m := range moves {
		s.logger.Printf("[ledger] %s %s %+d (%d -> %d)", m.Reference, m.ProductID, m.Delta, m.Before, m.After)
	}
}
