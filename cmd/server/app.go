package main

import (
	"net/http"
	"time"

	"github.com/diewo77/go-dairy/auth"
	"github.com/diewo77/go-dairy/gate"
	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/internal/metrics"
	"github.com/diewo77/go-dairy/internal/policy"
)

// App is the HTTP entry point of the API.
type App struct {
	mux       *http.ServeMux
	routerCfg *RouterConfig
	metrics   *metrics.Metrics
	latency   time.Duration
	handler   http.Handler
}

// NewApp registers every route. latency is added to each API request.
func NewApp(routerCfg *RouterConfig, m *metrics.Metrics, latency time.Duration) *App {
	app := &App{
		mux:       http.NewServeMux(),
		routerCfg: routerCfg,
		metrics:   m,
		latency:   latency,
	}
	app.setupRoutes()
	app.handler = auth.Middleware(app.mux)
	return app
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// handle registers h under pattern with latency and metrics applied.
func (a *App) handle(pattern string, h http.Handler) {
	a.mux.Handle(pattern, a.instrument(pattern, a.withLatency(h)))
}

func (a *App) setupRoutes() {
	rc := a.routerCfg
	ah := rc.AuthHandler

	// public
	a.handle("POST /api/login", http.HandlerFunc(ah.Login))
	a.handle("POST /api/logout", http.HandlerFunc(ah.Logout))
	a.handle("POST /api/password/reset-request", http.HandlerFunc(ah.RequestReset))
	a.handle("POST /api/password/reset", http.HandlerFunc(ah.ResetPassword))
	a.mux.Handle("GET /metrics", a.metrics.Handler())
	a.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// any session
	a.handle("GET /api/me", a.requireAuth(http.HandlerFunc(ah.Me)))
	a.handle("GET /photos/{key...}", a.requireAuth(http.HandlerFunc(rc.PhotoHandler.Serve)))

	// admin
	a.handle("POST /api/admin/password", a.requireAdmin(http.HandlerFunc(ah.ChangeAdminPassword)))
	a.handle("GET /api/dashboard", a.requirePermission(policy.ResourceDashboard, gate.ActionView, rc.DashboardHandler.Show))

	ph := rc.ProductHandler
	a.handle("GET /api/products", a.requirePermission(policy.ResourceProduct, gate.ActionList, ph.List))
	a.handle("GET /api/products/{id}", a.requirePermission(policy.ResourceProduct, gate.ActionView, ph.View))
	a.handle("PUT /api/products/{id}", a.requirePermission(policy.ResourceProduct, gate.ActionUpdate, ph.Update))

	sh := rc.StaffHandler
	a.handle("GET /api/staff", a.requirePermission(policy.ResourceStaff, gate.ActionList, sh.List))
	a.handle("POST /api/staff", a.requirePermission(policy.ResourceStaff, gate.ActionCreate, sh.Create))
	a.handle("PUT /api/staff/{id}/salary", a.requirePermission(policy.ResourceStaff, gate.ActionUpdate, sh.UpdateSalary))
	a.handle("DELETE /api/staff/{id}", a.requirePermission(policy.ResourceStaff, gate.ActionDelete, sh.Delete))

	dh := rc.DeliveryHandler
	a.handle("GET /api/deliveries", a.requireAdmin(http.HandlerFunc(dh.List)))
	a.handle("GET /api/my/deliveries", a.requirePermission(policy.ResourceDelivery, gate.ActionList, dh.Mine))
	a.handle("PUT /api/deliveries/{id}", a.requirePermission(policy.ResourceDelivery, gate.ActionUpdate, dh.Update))

	ih := rc.InvoiceHandler
	a.handle("GET /api/invoices", a.requirePermission(policy.ResourceInvoice, gate.ActionList, ih.List))
	a.handle("GET /api/invoices/{id}", a.requirePermission(policy.ResourceInvoice, gate.ActionView, ih.View))
	a.handle("POST /api/invoices", a.requirePermission(policy.ResourceInvoice, gate.ActionCreate, ih.Create))

	ch := rc.ConversionHandler
	a.handle("GET /api/conversions", a.requirePermission(policy.ResourceConversion, gate.ActionList, ch.List))
	a.handle("POST /api/conversions", a.requirePermission(policy.ResourceConversion, gate.ActionCreate, ch.Create))

	rh := rc.RouteHandler
	a.handle("GET /api/routes", a.requirePermission(policy.ResourceRoute, gate.ActionList, rh.List))
	a.handle("POST /api/routes", a.requirePermission(policy.ResourceRoute, gate.ActionCreate, rh.Create))

	srh := rc.SalaryHandler
	a.handle("GET /api/salaries", a.requirePermission(policy.ResourceSalary, gate.ActionList, srh.List))
	a.handle("POST /api/salaries", a.requirePermission(policy.ResourceSalary, gate.ActionPay, srh.Pay))
}

// requireAuth answers 401 without a live session.
func (a *App) requireAuth(next http.Handler) http.Handler {
	return auth.RequireAuth(next)
}

func (a *App) requireAdmin(next http.Handler) http.Handler {
	return a.requireAuth(a.routerCfg.AccessGate.RequireAdmin()(next))
}

func (a *App) requirePermission(resourceType string, action gate.Action, h http.HandlerFunc) http.Handler {
	return a.requireAuth(a.routerCfg.AccessGate.RequirePermission(resourceType, action)(h))
}

// withLatency delays the request by the configured latency, giving up when the client leaves.
func (a *App) withLatency(next http.Handler) http.Handler {
	if a.latency <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.NewTimer(a.latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-r.Context().Done():
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// instrument counts the request under its route pattern.
func (a *App) instrument(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.metrics.ObserveOperation(pattern, statusClass(rec.status), time.Since(start))
	})
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "error"
	case code >= 400:
		return "rejected"
	}
	return "ok"
}
