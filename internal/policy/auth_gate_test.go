package policy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/diewo77/go-dairy/auth"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/repository"
	"github.com/diewo77/go-dairy/internal/store"
)

var quiet = log.New(&bytes.Buffer{}, "", 0)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestRepo(t *testing.T) *repository.Repository {
	t.Helper()
	s := store.New(store.NewMemoryBackend(), store.WithLogger(quiet))
	return repository.Open(context.Background(), s,
		repository.WithRand(rand.New(rand.NewPCG(3, 4))),
		repository.WithLogger(quiet),
	)
}

func newTestGate(t *testing.T) (*AuthGate, *repository.Repository, *testClock) {
	t.Helper()
	repo := newTestRepo(t)
	c := &testClock{t: time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)}
	return NewAuthGate(repo, 0, WithClock(c.now), WithLogger(quiet)), repo, c
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newTestGate(t)

	cases := []struct {
		id, password string
		role         auth.Role
		user         string
	}{
		{"admin", "admin123", auth.RoleAdmin, "admin"},
		{"ADMIN", "admin123", auth.RoleAdmin, "admin"},
		{"Admin", "wrong", auth.RoleNone, ""},
		{" Admin ", "admin123", auth.RoleNone, ""},
		{"admin\n", "admin123", auth.RoleNone, ""},
		{"S001", "password1", auth.RoleStaff, "S001"},
		{"s001", "password1", auth.RoleNone, ""},
		{"S001", "password2", auth.RoleNone, ""},
		{"S999", "password1", auth.RoleNone, ""},
	}
	for _, tc := range cases {
		res := g.Login(ctx, tc.id, tc.password)
		if res.Role != tc.role {
			t.Errorf("%s/%s: expected %s got %s", tc.id, tc.password, tc.role, res.Role)
			continue
		}
		if tc.user == "" {
			if res.User != nil {
				t.Errorf("%s: expected no user", tc.id)
			}
		} else if res.User == nil || res.User.ID != tc.user {
			t.Errorf("%s: unexpected user %+v", tc.id, res.User)
		}
	}
}

func TestChangeAdminPassword(t *testing.T) {
	ctx := context.Background()
	g, repo, _ := newTestGate(t)

	if err := g.ChangeAdminPassword(ctx, "nope", "fresh", ""); !errors.Is(err, models.ErrInvalidCredential) {
		t.Fatalf("expected invalid credential got %v", err)
	}
	if err := g.ChangeAdminPassword(ctx, "admin123", "fresh", "fresh!"); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	if err := g.ChangeAdminPassword(ctx, "admin123", "", ""); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error for empty password got %v", err)
	}
	if repo.AdminPassword(ctx) != "admin123" {
		t.Fatalf("failed changes must keep the credential")
	}
	if err := g.ChangeAdminPassword(ctx, "admin123", "fresh", "fresh"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if g.Login(ctx, "admin", "fresh").Role != auth.RoleAdmin {
		t.Fatalf("new password should log in")
	}
	if g.Login(ctx, "admin", "admin123").Role != auth.RoleNone {
		t.Fatalf("old password should be rejected")
	}
}

func TestChangeAdminPasswordConcurrent(t *testing.T) {
	ctx := context.Background()
	g, repo, _ := newTestGate(t)

	const n = 8
	var wg sync.WaitGroup
	var ok atomic.Int32
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.ChangeAdminPassword(ctx, "admin123", fmt.Sprintf("new%d", i), "") == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()
	if ok.Load() != 1 {
		t.Fatalf("expected exactly one change to win, got %d", ok.Load())
	}
	if repo.AdminPassword(ctx) == "admin123" {
		t.Fatalf("credential should have changed")
	}
}

func TestRequestPasswordReset(t *testing.T) {
	ctx := context.Background()
	g, _, c := newTestGate(t)

	for _, id := range []string{"S001", " admin", "admin ", ""} {
		if _, err := g.RequestPasswordReset(ctx, id); !errors.Is(err, models.ErrInvalidCredential) {
			t.Fatalf("%q: expected invalid credential got %v", id, err)
		}
	}
	tok, err := g.RequestPasswordReset(ctx, "Admin")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if len(tok.Token) != 6 {
		t.Fatalf("expected 6-char token got %q", tok.Token)
	}
	for _, r := range tok.Token {
		if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			t.Fatalf("token %q is not uppercase alphanumeric", tok.Token)
		}
	}
	if !tok.Expiry.Equal(c.t.Add(5 * time.Minute)) {
		t.Fatalf("unexpected expiry %s", tok.Expiry)
	}
}

func TestResetPasswordSingleUse(t *testing.T) {
	ctx := context.Background()
	g, repo, c := newTestGate(t)
	tok, _ := g.RequestPasswordReset(ctx, "admin")

	if err := g.ResetPassword(ctx, "WRONG1", "newpass", ""); !errors.Is(err, models.ErrInvalidToken) {
		t.Fatalf("expected invalid token got %v", err)
	}
	c.t = c.t.Add(4*time.Minute + 59*time.Second)
	if err := g.ResetPassword(ctx, tok.Token, "newpass", "newpass"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if repo.AdminPassword(ctx) != "newpass" {
		t.Fatalf("credential not replaced")
	}
	if err := g.ResetPassword(ctx, tok.Token, "again", ""); !errors.Is(err, models.ErrInvalidToken) {
		t.Fatalf("reused token: expected invalid token got %v", err)
	}
}

func TestResetPasswordExpired(t *testing.T) {
	ctx := context.Background()
	g, repo, c := newTestGate(t)
	tok, _ := g.RequestPasswordReset(ctx, "admin")

	c.t = c.t.Add(5*time.Minute + time.Second)
	err := g.ResetPassword(ctx, tok.Token, "newpass", "")
	if !errors.Is(err, models.ErrExpiredToken) {
		t.Fatalf("expected expired token got %v", err)
	}
	if errors.Is(err, models.ErrInvalidToken) {
		t.Fatalf("expired must be distinct from invalid")
	}
	if err := g.ResetPassword(ctx, tok.Token, "newpass", ""); !errors.Is(err, models.ErrInvalidToken) {
		t.Fatalf("after expiry: expected invalid token got %v", err)
	}
	if repo.AdminPassword(ctx) != repository.DefaultAdminPassword {
		t.Fatalf("credential must not change")
	}
}

func TestResetPasswordReplacesPreviousToken(t *testing.T) {
	ctx := context.Background()
	tokens := []string{"AAAAAA", "BBBBBB"}
	repo := newTestRepo(t)
	g := NewAuthGate(repo, time.Minute, WithLogger(quiet), WithTokenSource(func() string {
		tok := tokens[0]
		tokens = tokens[1:]
		return tok
	}))
	_, _ = g.RequestPasswordReset(ctx, "admin")
	_, _ = g.RequestPasswordReset(ctx, "admin")

	if err := g.ResetPassword(ctx, "AAAAAA", "x", ""); !errors.Is(err, models.ErrInvalidToken) {
		t.Fatalf("replaced token: expected invalid got %v", err)
	}
	if err := g.ResetPassword(ctx, "BBBBBB", "x", "y"); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	if err := g.ResetPassword(ctx, "BBBBBB", "x", ""); err != nil {
		t.Fatalf("live token: %v", err)
	}
}
