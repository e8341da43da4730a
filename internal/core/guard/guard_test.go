package guard

import (
	"testing"

	"github.com/libraryhub/portal/internal/core/domain"
)

func TestAdmit_UnauthenticatedRedirectsToLogin(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleNone, domain.RoleUser, domain.RoleAdmin} {
		got := Admit(role, domain.SessionState{})
		if got.Allow || got.Target != LoginPath || got.Reason != ReasonUnauthenticated {
			t.Fatalf("required %q: expected redirect to login, got %+v", role, got)
		}
	}
}

func TestAdmit_RoleMismatch(t *testing.T) {
	got := Admit(domain.RoleAdmin, domain.SessionState{Authenticated: true, Role: domain.RoleUser})
	if got.Allow {
		t.Fatalf("USER must not enter an ADMIN route")
	}
	if got.Target != "/user" || got.Reason != ReasonRoleMismatch {
		t.Fatalf("expected redirect to /user, got %+v", got)
	}

	got = Admit(domain.RoleUser, domain.SessionState{Authenticated: true, Role: domain.RoleAdmin})
	if got.Allow || got.Target != "/admin" {
		t.Fatalf("expected ADMIN bounced to /admin, got %+v", got)
	}
}

func TestAdmit_UnknownRoleIsForbidden(t *testing.T) {
	got := Admit(domain.RoleUser, domain.SessionState{Authenticated: true, Role: "LIBRARIAN"})
	if got.Allow || got.Target != ForbiddenPath {
		t.Fatalf("expected forbidden redirect, got %+v", got)
	}
}

func TestAdmit_Allows(t *testing.T) {
	got := Admit(domain.RoleUser, domain.SessionState{Authenticated: true, Role: domain.RoleUser})
	if !got.Allow || got.Target != "" {
		t.Fatalf("expected allow, got %+v", got)
	}

	got = Admit(domain.RoleNone, domain.SessionState{Authenticated: true, Role: domain.RoleAdmin})
	if !got.Allow {
		t.Fatalf("expected allow for any authenticated role, got %+v", got)
	}
}

func TestRoutes_ProtectedRoutesDeclareRole(t *testing.T) {
	for _, r := range Routes {
		if !r.Public && !r.Required.Valid() {
			t.Fatalf("protected route %s has no valid role", r.Path)
		}
		if r.Public && r.Required != domain.RoleNone {
			t.Fatalf("public route %s must not require a role", r.Path)
		}
	}
}

func TestPublic_ListsOnlyPublicRoutes(t *testing.T) {
	paths := Public()
	if len(paths) == 0 {
		t.Fatalf("expected public routes")
	}
	for _, p := range paths {
		if p == "/user" || p == "/admin" {
			t.Fatalf("protected path %q listed as public", p)
		}
	}
}
