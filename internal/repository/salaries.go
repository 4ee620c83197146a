package repository

import (
	"context"
	"slices"

	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/validation"
)

// ListSalaryRecords returns payments newest first.
func (r *Repository) ListSalaryRecords(_ context.Context) []models.SalaryRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.state.SalaryRecords)
}

// PaySalary records a payment dated today. Repeated payments for a month are kept.
func (r *Repository) PaySalary(ctx context.Context, in models.NewSalaryPayment) (models.SalaryRecord, error) {
	v := make(validation.Violations)
	validation.Required("staffId", in.StaffID, v)
	validation.PositiveFloat("amount", in.Amount, v)
	validation.Valid("forMonth", models.ValidMonth(in.ForMonth), v)
	if !v.Empty() {
		return models.SalaryRecord{}, models.Invalid(v)
	}
	var created models.SalaryRecord
	err := r.Mutate(ctx, func(tx *Tx) error {
		if _, ok := tx.FindStaff(in.StaffID); !ok {
			return models.NotFound("staff", in.StaffID)
		}
		created = models.SalaryRecord{
			ID:          tx.NextID(models.PrefixSalary),
			StaffID:     in.StaffID,
			Amount:      in.Amount,
			PaymentDate: tx.Today(),
			ForMonth:    in.ForMonth,
		}
		tx.SalaryRecords = slices.Insert(tx.SalaryRecords, 0, created)
		return nil
	})
	if err != nil {
		return models.SalaryRecord{}, err
	}
	return created, nil
}
