package repository

import (
	"context"
	"slices"

	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/validation"
)

func (r *Repository) ListDeliveryRoutes(_ context.Context) []models.DeliveryRoute {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.state.Routes)
}

// CreateDeliveryRoute appends a route. The staff member must exist and work in Delivery.
func (r *Repository) CreateDeliveryRoute(ctx context.Context, in models.NewRoute) (models.DeliveryRoute, error) {
	v := make(validation.Violations)
	validation.Required("name", in.Name, v)
	validation.Required("staffId", in.StaffID, v)
	validation.Required("zone", in.Zone, v)
	if !v.Empty() {
		return models.DeliveryRoute{}, models.Invalid(v)
	}
	var created models.DeliveryRoute
	err := r.Mutate(ctx, func(tx *Tx) error {
		s, ok := tx.FindStaff(in.StaffID)
		if !ok {
			return models.NotFound("staff", in.StaffID)
		}
		if s.Role != models.RoleDelivery {
			return models.InvalidField("staffId", "not_delivery_staff")
		}
		created = models.DeliveryRoute{
			ID:      tx.NextID(models.PrefixRoute),
			Name:    in.Name,
			StaffID: in.StaffID,
			Zone:    in.Zone,
			Photo:   in.Photo,
		}
		tx.Routes = append(tx.Routes, created)
		return nil
	})
	if err != nil {
		return models.DeliveryRoute{}, err
	}
	return created, nil
}
