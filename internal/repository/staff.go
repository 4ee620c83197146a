package repository

import (
	"context"
	"slices"

	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/validation"
)

func cloneStaff(s models.Staff) models.Staff {
	if s.Salary != nil {
		v := *s.Salary
		s.Salary = &v
	}
	return s
}

func (r *Repository) ListStaff(_ context.Context) []models.Staff {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Staff, len(r.state.Staff))
	for i, s := range r.state.Staff {
		out[i] = cloneStaff(s)
	}
	return out
}

func (r *Repository) GetStaff(_ context.Context, id string) (models.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx := Tx{State: &r.state, r: r}
	s, ok := tx.FindStaff(id)
	if !ok {
		return models.Staff{}, models.NotFound("staff", id)
	}
	return cloneStaff(s), nil
}

// AddStaff appends a new staff member with the next S id.
func (r *Repository) AddStaff(ctx context.Context, in models.NewStaff) (models.Staff, error) {
	v := make(validation.Violations)
	validation.Required("name", in.Name, v)
	validation.Valid("role", in.Role.Valid(), v)
	validation.Required("password", in.Password, v)
	if in.Salary != nil {
		validation.NonNegativeFloat("salary", *in.Salary, v)
	}
	if !v.Empty() {
		return models.Staff{}, models.Invalid(v)
	}
	var created models.Staff
	err := r.Mutate(ctx, func(tx *Tx) error {
		created = cloneStaff(models.Staff{
			ID:       tx.NextID(models.PrefixStaff),
			Name:     in.Name,
			Role:     in.Role,
			Password: in.Password,
			Salary:   in.Salary,
		})
		tx.Staff = append(tx.Staff, created)
		return nil
	})
	if err != nil {
		return models.Staff{}, err
	}
	return cloneStaff(created), nil
}

func (r *Repository) UpdateStaffSalary(ctx context.Context, id string, amount float64) (models.Staff, error) {
	v := make(validation.Violations)
	validation.NonNegativeFloat("salary", amount, v)
	if !v.Empty() {
		return models.Staff{}, models.Invalid(v)
	}
	var updated models.Staff
	err := r.Mutate(ctx, func(tx *Tx) error {
		i := slices.IndexFunc(tx.Staff, func(s models.Staff) bool { return s.ID == id })
		if i < 0 {
			return models.NotFound("staff", id)
		}
		tx.Staff[i].Salary = salary(amount)
		updated = tx.Staff[i]
		return nil
	})
	if err != nil {
		return models.Staff{}, err
	}
	return cloneStaff(updated), nil
}

// DeleteStaff removes a staff member. Records referencing the id are kept.
func (r *Repository) DeleteStaff(ctx context.Context, id string) error {
	return r.Mutate(ctx, func(tx *Tx) error {
		i := slices.IndexFunc(tx.Staff, func(s models.Staff) bool { return s.ID == id })
		if i < 0 {
			return models.NotFound("staff", id)
		}
		tx.Staff = slices.Delete(tx.Staff, i, i+1)
		return nil
	})
}
