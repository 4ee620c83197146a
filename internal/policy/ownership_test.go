package policy

import (
	"context"
	"testing"

	"github.com/diewo77/go-dairy/auth"
	"github.com/diewo77/go-dairy/gate"
	"github.com/diewo77/go-dairy/internal/models"
)

func TestOwnershipPolicy(t *testing.T) {
	ctx := context.Background()
	p := NewOwnershipPolicy()
	s := auth.Session{Role: auth.RoleStaff, SubjectID: "S001"}

	if !p.Can(ctx, s, gate.ActionList, nil) {
		t.Error("nil resource should pass")
	}
	if !p.Can(ctx, s, gate.ActionUpdate, &models.Delivery{AssignedTo: "S001"}) {
		t.Error("owner should pass")
	}
	if p.Can(ctx, s, gate.ActionUpdate, &models.Delivery{AssignedTo: "S005"}) {
		t.Error("non-owner should fail")
	}
	if p.Can(ctx, auth.Session{Role: auth.RoleStaff}, gate.ActionUpdate, &models.Delivery{}) {
		t.Error("unassigned record should not match an empty subject")
	}
	if p.Can(ctx, s, gate.ActionView, models.Product{ID: "curd"}) {
		t.Error("records without an owner are denied")
	}
}

func TestAdminBypassPolicy(t *testing.T) {
	ctx := context.Background()
	p := NewAdminBypassPolicy(NewOwnershipPolicy())
	d := &models.Delivery{AssignedTo: "S005"}

	if !p.Can(ctx, auth.Session{Role: auth.RoleAdmin, SubjectID: auth.AdminSubject}, gate.ActionUpdate, d) {
		t.Error("admin should bypass")
	}
	if p.Can(ctx, auth.Session{Role: auth.RoleStaff, SubjectID: "S001"}, gate.ActionUpdate, d) {
		t.Error("staff should fall through to ownership")
	}
}
