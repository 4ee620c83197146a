package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/internal/services"
	"github.com/diewo77/go-dairy/validation"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(d *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: d}
}

// Show returns the overview; ?days=N limits the daily records to the last N days.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeViolations(w, lang(r), validation.Violations{"days": "invalid_value"})
			return
		}
		days = n
	}
	httpx.JSON(w, http.StatusOK, h.dashboard.Dashboard(r.Context(), days))
}
