package handlers

import (
	"net/http"

	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/internal/blob"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/repository"
)

type RouteHandler struct {
	repo   *repository.Repository
	photos *blob.Photos
}

func NewRouteHandler(repo *repository.Repository, photos *blob.Photos) *RouteHandler {
	return &RouteHandler{repo: repo, photos: photos}
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.repo.ListDeliveryRoutes(r.Context()))
}

func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewRoute
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	var err error
	if in.Photo, err = h.photos.Save(r.Context(), "routes", in.Photo); err != nil {
		writeError(w, r, err)
		return
	}
	route, err := h.repo.CreateDeliveryRoute(r.Context(), in)
	if err != nil {
		if key, ok := blob.KeyOf(in.Photo); ok {
			_, _ = h.photos.Store().Delete(r.Context(), key)
		}
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, route)
}
