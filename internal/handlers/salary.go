package handlers

import (
	"net/http"

	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/repository"
)

type SalaryHandler struct {
	repo *repository.Repository
}

func NewSalaryHandler(repo *repository.Repository) *SalaryHandler {
	return &SalaryHandler{repo: repo}
}

func (h *SalaryHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.repo.ListSalaryRecords(r.Context()))
}

func (h *SalaryHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var in models.NewSalaryPayment
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := h.repo.PaySalary(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}
