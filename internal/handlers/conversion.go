package handlers

import (
	"net/http"

	"github.com/diewo77/go-dairy/auth"
	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/repository"
	"github.com/diewo77/go-dairy/internal/services"
)

type ConversionHandler struct {
	repo       *repository.Repository
	production *services.ProductionService
}

func NewConversionHandler(repo *repository.Repository, production *services.ProductionService) *ConversionHandler {
	return &ConversionHandler{repo: repo, production: production}
}

func (h *ConversionHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.repo.ListConversionLogs(r.Context()))
}

func (h *ConversionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewConversion
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if s, ok := auth.SessionFromContext(r.Context()); ok && !s.IsAdmin() {
		in.StaffID = s.SubjectID
	}
	entry, err := h.production.LogConversion(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}
