package handlers

import (
	"net/http"

	"github.com/diewo77/go-dairy/auth"
	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/repository"
	"github.com/diewo77/go-dairy/internal/services"
)

type InvoiceHandler struct {
	repo     *repository.Repository
	invoices *services.InvoiceService
}

func NewInvoiceHandler(repo *repository.Repository, invoices *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{repo: repo, invoices: invoices}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.repo.ListInvoices(r.Context()))
}

func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	inv, err := h.repo.GetInvoice(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Create prices and stores an invoice. Staff always submit as themselves;
// the admin has to name the submitting staff member.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewInvoice
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if s, ok := auth.SessionFromContext(r.Context()); ok && !s.IsAdmin() {
		in.SubmittedBy = s.SubjectID
	}
	inv, err := h.invoices.CreateInvoice(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}
