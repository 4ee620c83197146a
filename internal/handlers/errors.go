package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/diewo77/go-dairy/gate"
	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/i18n"
	"github.com/diewo77/go-dairy/internal/blob"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/validation"
)

func lang(r *http.Request) string {
	return i18n.DetectLanguage(r.Header.Get("Accept-Language"))
}

// writeError maps domain errors to status codes and translated messages.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	l := lang(r)
	var derr *models.Error
	switch {
	case errors.As(err, &derr):
		writeDomainError(w, l, derr)
	case errors.Is(err, httpx.ErrBadJSON):
		httpx.JSONErrorMessage(w, http.StatusBadRequest, "bad_request", i18n.T(l, "bad_request"), err.Error())
	case errors.Is(err, blob.ErrBadPhoto):
		writeViolations(w, l, validation.Violations{"photo": "invalid_value"})
	case errors.Is(err, gate.ErrUnauthenticated):
		httpx.JSONErrorMessage(w, http.StatusUnauthorized, "unauthorized", i18n.T(l, "unauthorized"), nil)
	case errors.Is(err, gate.ErrForbidden):
		httpx.JSONErrorMessage(w, http.StatusForbidden, "forbidden", i18n.T(l, "forbidden"), nil)
	default:
		log.Printf("[http] %s %s: %v", r.Method, r.URL.Path, err)
		httpx.JSONErrorMessage(w, http.StatusInternalServerError, "internal_error", i18n.T(l, "internal_error"), nil)
	}
}

func writeDomainError(w http.ResponseWriter, l string, err *models.Error) {
	code := string(err.Kind)
	switch err.Kind {
	case models.KindNotFound:
		httpx.JSONErrorMessage(w, http.StatusNotFound, code, i18n.Tf(l, "not_found", err.Entity+" "+err.ID), nil)
	case models.KindValidation:
		writeViolations(w, l, err.Violations)
	case models.KindInvalidCredential:
		httpx.JSONErrorMessage(w, http.StatusUnauthorized, code, i18n.T(l, messageCode(err)), nil)
	case models.KindInvalidToken, models.KindExpiredToken:
		httpx.JSONErrorMessage(w, http.StatusBadRequest, code, i18n.T(l, code), nil)
	default:
		httpx.JSONErrorMessage(w, http.StatusInternalServerError, code, i18n.T(l, code), nil)
	}
}

func writeViolations(w http.ResponseWriter, l string, v validation.Violations) {
	httpx.JSONErrorMessage(w, http.StatusUnprocessableEntity, string(models.KindValidation),
		i18n.T(l, string(models.KindValidation)), i18n.TranslateAll(l, v))
}

// messageCode prefers the specific code carried by a credential error.
func messageCode(err *models.Error) string {
	if err.Message != "" {
		return err.Message
	}
	return string(err.Kind)
}
