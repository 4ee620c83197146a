package policy

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/diewo77/go-dairy/auth"
	"github.com/diewo77/go-dairy/gate"
	"github.com/diewo77/go-dairy/httpx"
	"github.com/diewo77/go-dairy/internal/repository"
)

// Resource names used in permissions.
const (
	ResourceProduct    = "product"
	ResourceStaff      = "staff"
	ResourceDelivery   = "delivery"
	ResourceInvoice    = "invoice"
	ResourceConversion = "conversion"
	ResourceRoute      = "route"
	ResourceSalary     = "salary"
	ResourceDashboard  = "dashboard"
)

// Profiles granted to the two session roles.
var (
	AdminProfile = gate.NewStaticProfile(string(auth.RoleAdmin), gate.SuperUser)
	StaffProfile = gate.NewStaticProfile(string(auth.RoleStaff),
		gate.NewPermission(ResourceProduct, gate.ActionList),
		gate.NewPermission(ResourceDelivery, gate.ActionList),
		gate.NewPermission(ResourceDelivery, gate.ActionUpdate),
		gate.NewPermission(ResourceInvoice, gate.ActionCreate),
		gate.NewPermission(ResourceConversion, gate.ActionCreate),
	)
)

// AccessGate decides what a session may do.
type AccessGate struct {
	Gate     *gate.Gate[auth.Session]
	Resolver *gate.CachedResolver[auth.Session]
}

// NewAccessGate resolves staff sessions against repo, caching the result for cacheTTL.
// Deliveries are owner-only for staff.
func NewAccessGate(repo *repository.Repository, cacheTTL time.Duration) *AccessGate {
	resolver := gate.NewCachedResolver[auth.Session](roleResolver(repo), cacheTTL)
	g := gate.New[auth.Session](resolver)
	g.Register(ResourceDelivery, NewAdminBypassPolicy(NewOwnershipPolicy()))
	return &AccessGate{Gate: g, Resolver: resolver}
}

func roleResolver(repo *repository.Repository) gate.ResolverFunc[auth.Session] {
	return func(ctx context.Context, s auth.Session) (gate.Profile, error) {
		switch s.Role {
		case auth.RoleAdmin:
			return AdminProfile, nil
		case auth.RoleStaff:
			if _, err := repo.GetStaff(ctx, s.SubjectID); err != nil {
				return nil, nil
			}
			return StaffProfile, nil
		}
		return nil, nil
	}
}

// Authorize checks the session in ctx.
func (ag *AccessGate) Authorize(ctx context.Context, action gate.Action, resourceType string, resource any) error {
	s, ok := auth.SessionFromContext(ctx)
	if !ok {
		return gate.ErrUnauthenticated
	}
	return ag.Gate.Authorize(ctx, s, action, resourceType, resource)
}

func (ag *AccessGate) CanProfile(ctx context.Context, action gate.Action, resourceType string) bool {
	s, ok := auth.SessionFromContext(ctx)
	if !ok {
		return false
	}
	return ag.Gate.CanProfile(ctx, s, action, resourceType)
}

// InvalidateStaff forgets cached profiles of staffID, e.g. after the record was deleted.
func (ag *AccessGate) InvalidateStaff(staffID string) {
	ag.Resolver.InvalidateFunc(func(s auth.Session) bool {
		return s.Role == auth.RoleStaff && s.SubjectID == staffID
	})
}

func deny(w http.ResponseWriter, err error) {
	if errors.Is(err, gate.ErrUnauthenticated) {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
}

// RequirePermission is middleware checking the profile permission only.
func (ag *AccessGate) RequirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := ag.Authorize(r.Context(), action, resourceType, nil); err != nil {
				deny(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin lets through only sessions whose profile holds "*:*".
func (ag *AccessGate) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := auth.SessionFromContext(r.Context())
			if !ok {
				deny(w, gate.ErrUnauthenticated)
				return
			}
			profile, err := ag.Resolver.Resolve(r.Context(), s)
			if err != nil || profile == nil || !profile.HasPermission(gate.SuperUser) {
				deny(w, gate.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
