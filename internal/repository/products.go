package repository

import (
	"context"
	"slices"

	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/validation"
)

func (r *Repository) ListProducts(_ context.Context) []models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.state.Products)
}

func (r *Repository) GetProduct(_ context.Context, id string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.state.Products, func(p models.Product) bool { return p.ID == id })
	if i < 0 {
		return models.Product{}, models.NotFound("product", id)
	}
	return r.state.Products[i], nil
}

// UpdateProduct replaces the stored product with p.
func (r *Repository) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	v := make(validation.Violations)
	validation.Required("name", p.Name, v)
	validation.Valid("unit", p.Unit.Valid(), v)
	validation.Valid("type", p.Type.Valid(), v)
	if !v.Empty() {
		return models.Product{}, models.Invalid(v)
	}
	err := r.Mutate(ctx, func(tx *Tx) error {
		i := slices.IndexFunc(tx.Products, func(x models.Product) bool { return x.ID == p.ID })
		if i < 0 {
			return models.NotFound("product", p.ID)
		}
		tx.Products[i] = p
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}
