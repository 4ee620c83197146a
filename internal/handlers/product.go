package handlers

import (
	"net/http"

	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/internal/metrics"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/repository"
)

type ProductHandler struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
}

func NewProductHandler(repo *repository.Repository, m *metrics.Metrics) *ProductHandler {
	return &ProductHandler{repo: repo, metrics: m}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.repo.ListProducts(r.Context()))
}

func (h *ProductHandler) View(w http.ResponseWriter, r *http.Request) {
	p, err := h.repo.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Update replaces the whole product; the id comes from the path.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := httpx.DecodeJSON(w, r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = r.PathValue("id")
	updated, err := h.repo.UpdateProduct(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.metrics.SetStock(h.repo.ListProducts(r.Context()))
	httpx.JSON(w, http.StatusOK, updated)
}
