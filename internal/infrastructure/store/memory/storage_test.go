package memory

import (
	"context"
	"testing"

	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/service"
)

func TestStore_ScopesAreIsolated(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.For("a").SetItem(ctx, "token", "tok-a"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := s.For("b").GetItem(ctx, "token"); ok {
		t.Fatalf("context b must not see context a's items")
	}
	v, ok, _ := s.For("a").GetItem(ctx, "token")
	if !ok || v != "tok-a" {
		t.Fatalf("expected tok-a, got %q ok=%v", v, ok)
	}
}

func TestStore_CredentialRoundTrip(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	store := service.NewKeyValueCredentialStore(s.For("browser"))

	want := domain.Credential{Token: "tok123", Role: domain.RoleUser}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.Load(ctx)
	if err != nil || !ok || got != want {
		t.Fatalf("expected %+v, got %+v ok=%v err=%v", want, got, ok, err)
	}

	// Simulated torn write: only the token survives.
	_ = s.For("browser").RemoveItem(ctx, service.RoleKey)
	if _, ok, _ := store.Load(ctx); ok {
		t.Fatalf("partial record must load as absent")
	}
}

func TestStore_RemoveAbsentKey(t *testing.T) {
	s := NewStore()
	if err := s.For("nobody").RemoveItem(context.Background(), "token"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}
