package gate_test

import (
	"context"
	"testing"

	"github.com/diewo77/billing-admin/gate"
)

func TestGate_Authorize_ZeroSubject(t *testing.T) {
	r := gate.NewStaticResolver[uint]()
	g := gate.NewGate[uint](r)

	if err := g.Authorize(context.Background(), 0, gate.ActionList, "product"); err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGate_Authorize_NoProfile(t *testing.T) {
	r := gate.NewStaticResolver[uint]()
	g := gate.NewGate[uint](r)

	if err := g.Authorize(context.Background(), 1, gate.ActionList, "product"); err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized for subject without profile, got %v", err)
	}
}

func TestGate_Authorize_AllowedAndDenied(t *testing.T) {
	r := gate.NewStaticResolver[uint]()
	r.Set(1, gate.NewStaticProfile("clerk", "product:list", "client:create"))
	g := gate.NewGate[uint](r)

	if err := g.Authorize(context.Background(), 1, gate.ActionList, "product"); err != nil {
		t.Errorf("expected allow, got %v", err)
	}
	if err := g.Authorize(context.Background(), 1, gate.ActionDelete, "product"); err != gate.ErrUnauthorized {
		t.Errorf("expected deny, got %v", err)
	}
	if err := g.Authorize(context.Background(), 1, gate.ActionCreate, "client"); err != nil {
		t.Errorf("expected allow, got %v", err)
	}
}

func TestGate_Can_Superadmin(t *testing.T) {
	r := gate.NewStaticResolver[uint]()
	r.Set(9, gate.NewStaticProfile("boss", gate.PermissionSuperAdmin))
	g := gate.NewGate[uint](r)

	for _, action := range []gate.Action{gate.ActionList, gate.ActionCreate, gate.ActionUpdate, gate.ActionDelete, gate.ActionExport} {
		if !g.Can(context.Background(), 9, action, "bill") {
			t.Errorf("superadmin should be able to %s bill", action)
		}
	}
}
