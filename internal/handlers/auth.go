package handlers

import (
	"net/http"

	"github.com/diewo77/go-dairy/auth"
	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/i18n"
	"github.com/diewo77/go-dairy/internal/policy"
)

// Result is the reply of the password flows.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type AuthHandler struct {
	gate *policy.AuthGate
}

func NewAuthHandler(g *policy.AuthGate) *AuthHandler {
	return &AuthHandler{gate: g}
}

type loginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res := h.gate.Login(r.Context(), req.ID, req.Password)
	if res.Role == auth.RoleNone {
		auth.ClearSession(w)
		httpx.JSONErrorMessage(w, http.StatusUnauthorized, "invalid_credential", i18n.T(lang(r), "invalid_login"), res)
		return
	}
	auth.CreateSession(w, auth.Session{Role: res.Role, SubjectID: res.User.ID})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, Result{Success: true, Message: i18n.T(lang(r), "logged_out")})
}

// Me returns the session of the caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s, _ := auth.SessionFromContext(r.Context())
	httpx.JSON(w, http.StatusOK, s)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) ChangeAdminPassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.gate.ChangeAdminPassword(r.Context(), req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, Result{Success: true, Message: i18n.T(lang(r), "password_updated")})
}

type resetRequest struct {
	AdminID string `json:"adminId"`
}

func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	tok, err := h.gate.RequestPasswordReset(r.Context(), req.AdminID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	minutes := int(h.gate.TTL().Minutes())
	httpx.JSON(w, http.StatusOK, Result{
		Success: true,
		Message: i18n.Tf(lang(r), "token_generated", minutes),
		Token:   tok.Token,
	})
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.gate.ResetPassword(r.Context(), req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, Result{Success: true, Message: i18n.T(lang(r), "password_reset")})
}
