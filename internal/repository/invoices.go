package repository

import (
	"context"
	"slices"

	"github.com/diewo77/go-dairy/internal/models"
)

func cloneInvoice(inv models.Invoice) models.Invoice {
	inv.Items = slices.Clone(inv.Items)
	return inv
}

// ListInvoices returns invoices newest first.
func (r *Repository) ListInvoices(_ context.Context) []models.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Invoice, len(r.state.Invoices))
	for i, inv := range r.state.Invoices {
		out[i] = cloneInvoice(inv)
	}
	return out
}

func (r *Repository) GetInvoice(_ context.Context, id string) (models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.state.Invoices, func(inv models.Invoice) bool { return inv.ID == id })
	if i < 0 {
		return models.Invoice{}, models.NotFound("invoice", id)
	}
	return cloneInvoice(r.state.Invoices[i]), nil
}

// ListConversionLogs returns conversion logs newest first.
func (r *Repository) ListConversionLogs(_ context.Context) []models.ConversionLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.state.ConversionLogs)
}
