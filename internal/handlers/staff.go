package handlers

import (
	"net/http"

	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/policy"
	"github.com/diewo77/go-dairy/internal/repository"
)

type StaffHandler struct {
	repo   *repository.Repository
	access *policy.AccessGate
}

func NewStaffHandler(repo *repository.Repository, access *policy.AccessGate) *StaffHandler {
	return &StaffHandler{repo: repo, access: access}
}

func publicStaff(list []models.Staff) []models.PublicStaff {
	out := make([]models.PublicStaff, len(list))
	for i, s := range list {
		out[i] = s.Public()
	}
	return out
}

func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, publicStaff(h.repo.ListStaff(r.Context())))
}

func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewStaff
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	s, err := h.repo.AddStaff(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, s.Public())
}

type salaryUpdate struct {
	Salary float64 `json:"salary"`
}

func (h *StaffHandler) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	var in salaryUpdate
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	s, err := h.repo.UpdateStaffSalary(r.Context(), r.PathValue("id"), in.Salary)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, s.Public())
}

// Delete removes the staff record. Deliveries, invoices and logs keep referencing the id.
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.repo.DeleteStaff(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	h.access.InvalidateStaff(id)
	w.WriteHeader(http.StatusNoContent)
}
