package policy

import (
	"context"

	"github.com/diewo77/go-dairy/auth"
	"github.com/diewo77/go-dairy/gate"
)

// Owned is implemented by records assigned to a staff member.
type Owned interface {
	OwnerID() string
}

// OwnershipPolicy allows access to Owned records whose owner is the session subject.
type OwnershipPolicy struct{}

func NewOwnershipPolicy() *OwnershipPolicy { return &OwnershipPolicy{} }

func (p *OwnershipPolicy) Can(_ context.Context, s auth.Session, _ gate.Action, resource any) bool {
	if resource == nil {
		return true
	}
	owned, ok := resource.(Owned)
	if !ok {
		return false
	}
	return owned.OwnerID() != "" && owned.OwnerID() == s.SubjectID
}

// AdminBypassPolicy lets admin sessions through and defers to inner otherwise.
type AdminBypassPolicy struct {
	inner gate.Policy[auth.Session]
}

func NewAdminBypassPolicy(inner gate.Policy[auth.Session]) *AdminBypassPolicy {
	return &AdminBypassPolicy{inner: inner}
}

func (p *AdminBypassPolicy) Can(ctx context.Context, s auth.Session, action gate.Action, resource any) bool {
	if s.IsAdmin() {
		return true
	}
	return p.inner.Can(ctx, s, action, resource)
}
