package main

import (
	"time"

	"github.com/diewo77/go-dairy/internal/blob"
	"github.com/diewo77/go-dairy/internal/config"
	"github.com/diewo77/go-dairy/internal/handlers"
	"github.com/diewo77/go-dairy/internal/metrics"
	"github.com/diewo77/go-dairy/internal/policy"
	"github.com/diewo77/go-dairy/internal/pricing"
	"github.com/diewo77/go-dairy/internal/repository"
	"github.com/diewo77/go-dairy/internal/services"
)

// profileCacheTTL bounds how long a deleted staff member keeps a cached profile
// when the delete did not go through this process.
const profileCacheTTL = 5 * time.Minute

// RouterConfig holds the gates, services and handlers the routes are built from.
type RouterConfig struct {
	AuthGate   *policy.AuthGate
	AccessGate *policy.AccessGate

	InvoiceService    *services.InvoiceService
	ProductionService *services.ProductionService
	DashboardService  *services.DashboardService

	AuthHandler       *handlers.AuthHandler
	ProductHandler    *handlers.ProductHandler
	StaffHandler      *handlers.StaffHandler
	DeliveryHandler   *handlers.DeliveryHandler
	InvoiceHandler    *handlers.InvoiceHandler
	ConversionHandler *handlers.ConversionHandler
	RouteHandler      *handlers.RouteHandler
	SalaryHandler     *handlers.SalaryHandler
	DashboardHandler  *handlers.DashboardHandler
	PhotoHandler      *handlers.PhotoHandler
}

// NewRouterConfig wires everything that hangs off the repository.
func NewRouterConfig(cfg config.Config, repo *repository.Repository, m *metrics.Metrics, store blob.Store, opts ...policy.Option) *RouterConfig {
	authGate := policy.NewAuthGate(repo, cfg.App.ResetTokenTTL, opts...)
	access := policy.NewAccessGate(repo, profileCacheTTL)
	photos := blob.NewPhotos(store)

	invoices := services.NewInvoiceService(repo, pricing.DefaultTable(), m)
	production := services.NewProductionService(repo, m)
	dashboard := services.NewDashboardService(repo)

	return &RouterConfig{
		AuthGate:          authGate,
		AccessGate:        access,
		InvoiceService:    invoices,
		ProductionService: production,
		DashboardService:  dashboard,
		AuthHandler:       handlers.NewAuthHandler(authGate),
		ProductHandler:    handlers.NewProductHandler(repo, m),
		StaffHandler:      handlers.NewStaffHandler(repo, access),
		DeliveryHandler:   handlers.NewDeliveryHandler(repo, access, photos),
		InvoiceHandler:    handlers.NewInvoiceHandler(repo, invoices),
		ConversionHandler: handlers.NewConversionHandler(repo, production),
		RouteHandler:      handlers.NewRouteHandler(repo, photos),
		SalaryHandler:     handlers.NewSalaryHandler(repo),
		DashboardHandler:  handlers.NewDashboardHandler(dashboard),
		PhotoHandler:      handlers.NewPhotoHandler(store),
	}
}
