package policy

import (
	"context"
	"crypto/rand"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/go-dairy/auth"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/repository"
	"github.com/diewo77/go-dairy/validation"
)

// DefaultResetTTL is how long a reset token stays valid.
const DefaultResetTTL = 5 * time.Minute

const tokenLength = 6

// ResetToken is the single live password reset token.
type ResetToken struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

// LoginResult carries the role granted by Login. User is nil for RoleNone.
type LoginResult struct {
	Role auth.Role           `json:"role"`
	User *models.PublicStaff `json:"user"`
}

// AuthGate checks credentials and runs the admin password reset flow.
type AuthGate struct {
	repo     *repository.Repository
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
	logger   *log.Logger

	mu    sync.Mutex
	reset *ResetToken
}

type Option func(*AuthGate)

func WithClock(now func() time.Time) Option {
	return func(g *AuthGate) { g.now = now }
}

// WithTokenSource replaces the random token generator.
func WithTokenSource(f func() string) Option {
	return func(g *AuthGate) { g.newToken = f }
}

func WithLogger(l *log.Logger) Option {
	return func(g *AuthGate) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewAuthGate returns a gate whose reset tokens live for ttl (DefaultResetTTL when ttl <= 0).
func NewAuthGate(repo *repository.Repository, ttl time.Duration, opts ...Option) *AuthGate {
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	g := &AuthGate{
		repo:     repo,
		ttl:      ttl,
		now:      time.Now,
		newToken: randomToken,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// TTL is the lifetime of new reset tokens.
func (g *AuthGate) TTL() time.Duration { return g.ttl }

// randomToken yields uppercase letters and the digits 2-7.
func randomToken() string {
	return rand.Text()[:tokenLength]
}

func isAdminID(id string) bool {
	return strings.EqualFold(id, auth.AdminSubject)
}

func credentialError(code string) *models.Error {
	return &models.Error{Kind: models.KindInvalidCredential, Message: code}
}

// Login resolves id and password to a role. Credentials are compared as plain values.
func (g *AuthGate) Login(ctx context.Context, id, password string) LoginResult {
	if isAdminID(id) && password == g.repo.AdminPassword(ctx) {
		return LoginResult{Role: auth.RoleAdmin, User: &models.PublicStaff{ID: auth.AdminSubject, Name: "Admin"}}
	}
	if s, err := g.repo.GetStaff(ctx, id); err == nil && s.Password == password {
		p := s.Public()
		return LoginResult{Role: auth.RoleStaff, User: &p}
	}
	return LoginResult{Role: auth.RoleNone}
}

// ChangeAdminPassword replaces the admin credential when oldPassword matches it.
// An empty confirm skips the confirmation check.
func (g *AuthGate) ChangeAdminPassword(ctx context.Context, oldPassword, newPassword, confirm string) error {
	v := make(validation.Violations)
	validation.Required("newPassword", newPassword, v)
	if confirm != "" {
		validation.Match("confirmPassword", confirm, newPassword, v)
	}
	if !v.Empty() {
		return models.Invalid(v)
	}
	err := g.repo.Mutate(ctx, func(tx *repository.Tx) error {
		if oldPassword != tx.AdminPassword {
			return credentialError("incorrect_current_password")
		}
		tx.AdminPassword = newPassword
		return nil
	})
	if err != nil {
		return err
	}
	g.logger.Printf("[auth] admin password changed")
	return nil
}

// RequestPasswordReset issues a new token for the admin, replacing any previous one.
func (g *AuthGate) RequestPasswordReset(_ context.Context, adminID string) (ResetToken, error) {
	if !isAdminID(adminID) {
		return ResetToken{}, credentialError("invalid_admin_id")
	}
	t := ResetToken{Token: g.newToken(), Expiry: g.now().Add(g.ttl)}
	g.mu.Lock()
	g.reset = &t
	g.mu.Unlock()
	g.logger.Printf("[auth] reset token issued, expires %s", t.Expiry.Format(time.RFC3339))
	return t, nil
}

// ResetPassword consumes the live token. A token presented at or after its
// expiry is cleared and reported as expired; later attempts see an invalid token.
func (g *AuthGate) ResetPassword(ctx context.Context, token, newPassword, confirm string) error {
	v := make(validation.Violations)
	validation.Required("newPassword", newPassword, v)
	if confirm != "" {
		validation.Match("confirmPassword", confirm, newPassword, v)
	}
	if !v.Empty() {
		return models.Invalid(v)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reset == nil || g.reset.Token != token {
		return &models.Error{Kind: models.KindInvalidToken, Message: "invalid_token"}
	}
	if !g.now().Before(g.reset.Expiry) {
		g.reset = nil
		return &models.Error{Kind: models.KindExpiredToken, Message: "expired_token"}
	}
	g.reset = nil
	g.repo.SetAdminPassword(ctx, newPassword)
	g.logger.Printf("[auth] admin password reset")
	return nil
}
