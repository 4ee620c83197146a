package services

import (
	"context"

	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/repository"
)

// DashboardData is what the admin overview shows.
type DashboardData struct {
	DailyRecords  []models.DailyRecord `json:"dailyRecords"`
	DeliveryStats models.DeliveryStats `json:"deliveryStats"`
	Revenue       float64              `json:"revenue"`
}

type DashboardService struct {
	repo *repository.Repository
}

func NewDashboardService(repo *repository.Repository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Dashboard returns the last days of figures (all of them when days <= 0),
// delivery counts, and the total of every stored invoice.
func (s *DashboardService) Dashboard(ctx context.Context, days int) DashboardData {
	records := s.repo.ListDailyRecords(ctx)
	if days > 0 && days < len(records) {
		records = records[len(records)-days:]
	}
	return DashboardData{
		DailyRecords:  records,
		DeliveryStats: s.repo.DeliveryStats(ctx),
		Revenue:       s.GetRevenue(ctx),
	}
}

// GetRevenue sums the frozen totals of all invoices.
func (s *DashboardService) GetRevenue(ctx context.Context) float64 {
	var total float64
	for _, inv := range s.repo.ListInvoices(ctx) {
		total += inv.Total
	}
	return total
}
