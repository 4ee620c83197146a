package handlers

import (
	"net/http"

	"github.com/diewo77/go-dairy/auth"
	"github.com/diewo77/go-dairy/gate"
	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/internal/blob"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/policy"
	"github.com/diewo77/go-dairy/internal/repository"
)

type DeliveryHandler struct {
	repo   *repository.Repository
	access *policy.AccessGate
	photos *blob.Photos
}

func NewDeliveryHandler(repo *repository.Repository, access *policy.AccessGate, photos *blob.Photos) *DeliveryHandler {
	return &DeliveryHandler{repo: repo, access: access, photos: photos}
}

func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.repo.ListDeliveries(r.Context()))
}

// Mine lists the deliveries assigned to the calling staff member.
func (h *DeliveryHandler) Mine(w http.ResponseWriter, r *http.Request) {
	s, _ := auth.SessionFromContext(r.Context())
	httpx.JSON(w, http.StatusOK, h.repo.ListDeliveriesByStaff(r.Context(), s.SubjectID))
}

// Update replaces a pending delivery. Staff may only touch their own; a data URL
// photo is moved to the photo store first.
func (h *DeliveryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	existing, err := h.repo.GetDelivery(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.access.Authorize(ctx, gate.ActionUpdate, policy.ResourceDelivery, &existing); err != nil {
		writeError(w, r, err)
		return
	}

	var d models.Delivery
	if err := httpx.DecodeJSON(w, r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	d.ID = id
	if d.Photo, err = h.photos.Save(ctx, "deliveries", d.Photo); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.repo.UpdateDelivery(ctx, d)
	if err != nil {
		if key, ok := blob.KeyOf(d.Photo); ok && d.Photo != existing.Photo {
			_, _ = h.photos.Store().Delete(ctx, key)
		}
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}
