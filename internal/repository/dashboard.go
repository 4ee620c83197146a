package repository

import (
	"context"
	"slices"

	"github.com/diewo77/go-dairy/internal/models"
)

// ListDailyRecords returns the dashboard figures, oldest first.
func (r *Repository) ListDailyRecords(_ context.Context) []models.DailyRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.state.DailyRecords)
}
