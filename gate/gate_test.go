package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/go-dairy/gate"
)

type subject struct {
	Role string
	ID   string
}

type drop struct{ AssignedTo string }

func newTestGate() *gate.Gate[subject] {
	profiles := map[string]gate.Profile{
		"admin": gate.NewStaticProfile("admin", gate.SuperUser),
		"staff": gate.NewStaticProfile("staff",
			gate.NewPermission("delivery", gate.ActionList),
			gate.NewPermission("delivery", gate.ActionUpdate),
			gate.NewPermission("invoice", gate.ActionCreate),
		),
	}
	g := gate.New[subject](gate.ResolverFunc[subject](func(_ context.Context, s subject) (gate.Profile, error) {
		return profiles[s.Role], nil
	}))
	g.Register("delivery", gate.PolicyFunc[subject](func(_ context.Context, s subject, _ gate.Action, resource any) bool {
		d, ok := resource.(drop)
		return ok && (s.Role == "admin" || d.AssignedTo == s.ID)
	}))
	return g
}

func TestGateProfileCheck(t *testing.T) {
	ctx := context.Background()
	g := newTestGate()
	staff := subject{Role: "staff", ID: "S001"}

	if !g.Can(ctx, staff, gate.ActionCreate, "invoice", nil) {
		t.Error("staff should create invoices")
	}
	if err := g.Authorize(ctx, staff, gate.ActionPay, "salary", nil); !errors.Is(err, gate.ErrForbidden) {
		t.Errorf("expected ErrForbidden got %v", err)
	}
	if err := g.Authorize(ctx, subject{}, gate.ActionList, "delivery", nil); !errors.Is(err, gate.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated got %v", err)
	}
	if g.Can(ctx, subject{Role: "ghost", ID: "X"}, gate.ActionList, "delivery", nil) {
		t.Error("subject without profile must be denied")
	}
	if !g.Can(ctx, subject{Role: "admin", ID: "admin"}, gate.ActionPay, "salary", nil) {
		t.Error("admin should pay salaries")
	}
}

func TestGateOwnershipPolicy(t *testing.T) {
	ctx := context.Background()
	g := newTestGate()
	mine := drop{AssignedTo: "S001"}

	if !g.Can(ctx, subject{Role: "staff", ID: "S001"}, gate.ActionUpdate, "delivery", mine) {
		t.Error("assignee should update own delivery")
	}
	if g.Can(ctx, subject{Role: "staff", ID: "S005"}, gate.ActionUpdate, "delivery", mine) {
		t.Error("other staff must not update the delivery")
	}
	if !g.Can(ctx, subject{Role: "admin", ID: "admin"}, gate.ActionUpdate, "delivery", mine) {
		t.Error("admin bypasses ownership")
	}
	if !g.CanProfile(ctx, subject{Role: "staff", ID: "S005"}, gate.ActionUpdate, "delivery") {
		t.Error("CanProfile ignores ownership")
	}
}
