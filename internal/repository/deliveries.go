package repository

import (
	"context"
	"slices"
	"strings"

	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/validation"
)

func (r *Repository) ListDeliveries(_ context.Context) []models.Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.state.Deliveries)
}

// ListDeliveriesByStaff returns the deliveries assigned to staffID.
func (r *Repository) ListDeliveriesByStaff(_ context.Context, staffID string) []models.Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Delivery{}
	for _, d := range r.state.Deliveries {
		if d.AssignedTo == staffID {
			out = append(out, d)
		}
	}
	return out
}

func (r *Repository) GetDelivery(_ context.Context, id string) (models.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.state.Deliveries, func(d models.Delivery) bool { return d.ID == id })
	if i < 0 {
		return models.Delivery{}, models.NotFound("delivery", id)
	}
	return r.state.Deliveries[i], nil
}

// UpdateDelivery replaces the stored delivery with d. Only pending deliveries
// can change; the assignee is fixed and a return needs a reason.
func (r *Repository) UpdateDelivery(ctx context.Context, d models.Delivery) (models.Delivery, error) {
	v := make(validation.Violations)
	validation.Required("customerName", d.CustomerName, v)
	validation.Required("address", d.Address, v)
	validation.Valid("status", d.Status.Valid(), v)
	if d.Status == models.DeliveryReturned {
		validation.Required("reason", d.Reason, v)
	} else if strings.TrimSpace(d.Reason) != "" || d.Photo != "" {
		v.Add("reason", "only_when_returned")
	}
	if !v.Empty() {
		return models.Delivery{}, models.Invalid(v)
	}
	err := r.Mutate(ctx, func(tx *Tx) error {
		i := slices.IndexFunc(tx.Deliveries, func(x models.Delivery) bool { return x.ID == d.ID })
		if i < 0 {
			return models.NotFound("delivery", d.ID)
		}
		current := tx.Deliveries[i]
		if current.Status != models.DeliveryPending {
			return models.InvalidField("status", "already_final")
		}
		if d.AssignedTo != current.AssignedTo {
			return models.InvalidField("assignedTo", "immutable")
		}
		tx.Deliveries[i] = d
		return nil
	})
	if err != nil {
		return models.Delivery{}, err
	}
	return d, nil
}

// DeliveryStats counts deliveries per status.
func (r *Repository) DeliveryStats(_ context.Context) models.DeliveryStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats models.DeliveryStats
	for _, d := range r.state.Deliveries {
		switch d.Status {
		case models.DeliveryDelivered:
			stats.Delivered++
		case models.DeliveryPending:
			stats.Pending++
		case models.DeliveryReturned:
			stats.Returned++
		}
	}
	return stats
}
