// Package auth carries the signed session cookie issued at login.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/diewo77/go-dairy/httpx"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleNone  Role = "none"
)

// AdminSubject is the subject id of the admin session.
const AdminSubject = "admin"

// Session identifies who is calling. The zero Session is anonymous.
type Session struct {
	Role      Role   `json:"role"`
	SubjectID string `json:"subjectId"`
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

type ctxKey string

const (
	sessionCookieName = "session"
	sessionCtxKey     = ctxKey("session")
	sessionTTL        = 12 * time.Hour
)

// Verifier reports whether a session still refers to an allowed subject.
type Verifier func(ctx context.Context, s Session) bool

var verifier Verifier

// SetVerifier configures the check RequireAuth runs on every request. nil disables it.
func SetVerifier(v Verifier) { verifier = v }

// Secret returns SESSION_SECRET or the dev default.
func Secret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func encode(s Session) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(string(s.Role) + "|" + s.SubjectID))
	return payload + "." + sign(payload)
}

func decode(value string) (Session, bool) {
	payload, sig, ok := strings.Cut(value, ".")
	if !ok || !hmac.Equal([]byte(sig), []byte(sign(payload))) {
		return Session{}, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return Session{}, false
	}
	role, subject, ok := strings.Cut(string(raw), "|")
	if !ok || subject == "" || (Role(role) != RoleAdmin && Role(role) != RoleStaff) {
		return Session{}, false
	}
	return Session{Role: Role(role), SubjectID: subject}, true
}

// CreateSession sets the signed session cookie.
func CreateSession(w http.ResponseWriter, s Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encode(s),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionTTL),
	})
}

func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie of r.
func ParseSession(r *http.Request) (Session, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return Session{}, false
	}
	return decode(c.Value)
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionCtxKey).(Session)
	return s, ok
}

// Middleware attaches the session to the request context when the cookie is valid.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := ParseSession(r); ok {
			r = r.WithContext(WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth answers 401 unless the request carries a live session.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessionFromContext(r.Context())
		if !ok {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		if verifier != nil && !verifier(r.Context(), s) {
			// staff deleted since login
			ClearSession(w)
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
