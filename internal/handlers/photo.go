package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/internal/blob"
)

const presignExpiry = 10 * time.Minute

type PhotoHandler struct {
	store blob.Store
}

func NewPhotoHandler(store blob.Store) *PhotoHandler {
	return &PhotoHandler{store: store}
}

// Serve streams a stored photo, or redirects to a presigned URL when the store offers one.
func (h *PhotoHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if p, ok := h.store.(blob.Presigner); ok {
		url, err := p.PresignGet(r.Context(), key, presignExpiry)
		if err == nil {
			http.Redirect(w, r, url, http.StatusFound)
			return
		}
		log.Printf("[photos] presign %s: %v", key, err)
	}
	info, body, err := h.store.Get(r.Context(), key)
	switch {
	case errors.Is(err, blob.ErrNotFound), errors.Is(err, blob.ErrInvalidKey):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	case err != nil:
		writeError(w, r, err)
		return
	}
	defer body.Close()
	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		log.Printf("[photos] stream %s: %v", key, err)
	}
}
