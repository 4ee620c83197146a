// Package gate decides whether a subject may perform an action on a resource.
//
// A decision has two stages. The subject's profile, found through a
// ProfileResolver, must grant the "resource:action" permission. Then, when a
// concrete resource is supplied and a Policy is registered for its type, the
// policy has the last word (ownership checks live there).
//
// The subject type is generic so the package knows nothing about sessions or
// staff records.
package gate

import (
	"context"
	"sync"
)

type Gate[U comparable] struct {
	resolver ProfileResolver[U]

	mu       sync.RWMutex
	policies map[string]Policy[U]
}

func New[U comparable](resolver ProfileResolver[U]) *Gate[U] {
	return &Gate[U]{resolver: resolver, policies: make(map[string]Policy[U])}
}

// Register sets the policy consulted for resources of resourceType.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.mu.Lock()
	g.policies[resourceType] = p
	g.mu.Unlock()
}

func (g *Gate[U]) policy(resourceType string) (Policy[U], bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.policies[resourceType]
	return p, ok
}

// Authorize returns nil when user may perform action on resource.
// resource may be nil for list and create checks.
func (g *Gate[U]) Authorize(ctx context.Context, user U, action Action, resourceType string, resource any) error {
	var zero U
	if user == zero {
		return ErrUnauthenticated
	}
	if !g.CanProfile(ctx, user, action, resourceType) {
		return ErrForbidden
	}
	if resource == nil {
		return nil
	}
	if p, ok := g.policy(resourceType); ok && !p.Can(ctx, user, action, resource) {
		return ErrForbidden
	}
	return nil
}

func (g *Gate[U]) Can(ctx context.Context, user U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, user, action, resourceType, resource) == nil
}

// CanProfile checks the profile permission only.
func (g *Gate[U]) CanProfile(ctx context.Context, user U, action Action, resourceType string) bool {
	var zero U
	if user == zero {
		return false
	}
	profile, err := g.resolver.Resolve(ctx, user)
	if err != nil || profile == nil {
		return false
	}
	return profile.HasPermission(NewPermission(resourceType, action))
}
