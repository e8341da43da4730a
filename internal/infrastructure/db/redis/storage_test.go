package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/service"
)

func newTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStorage(client, "test"), mr
}

func TestStorage_CredentialRoundTrip(t *testing.T) {
	storage, mr := newTestStorage(t)
	ctx := context.Background()
	store := service.NewKeyValueCredentialStore(storage.For("ctx-1"))

	want := domain.Credential{Token: "tok123", Role: domain.RoleAdmin}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	if got, _ := mr.Get("test:ctx-1:token"); got != "tok123" {
		t.Fatalf("expected token key, got %q", got)
	}
	if got, _ := mr.Get("test:ctx-1:role"); got != "ADMIN" {
		t.Fatalf("expected role key, got %q", got)
	}
	if mr.TTL("test:ctx-1:token") != 0 {
		t.Fatalf("credential keys must not expire")
	}

	got, ok, err := store.Load(ctx)
	if err != nil || !ok || got != want {
		t.Fatalf("expected %+v, got %+v ok=%v err=%v", want, got, ok, err)
	}
}

func TestStorage_PartialWriteIsAbsent(t *testing.T) {
	storage, mr := newTestStorage(t)
	ctx := context.Background()

	if err := mr.Set("test:ctx-2:token", "tok123"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := service.NewKeyValueCredentialStore(storage.For("ctx-2"))
	cred, ok, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("expected absent for token-only record, got %+v", cred)
	}
}

func TestStorage_ClearRemovesBothKeys(t *testing.T) {
	storage, mr := newTestStorage(t)
	ctx := context.Background()
	store := service.NewKeyValueCredentialStore(storage.For("ctx-3"))

	_ = store.Save(ctx, domain.Credential{Token: "tok", Role: domain.RoleUser})
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if mr.Exists("test:ctx-3:token") || mr.Exists("test:ctx-3:role") {
		t.Fatalf("expected both keys removed")
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestStorage_UnreachableServer(t *testing.T) {
	storage, mr := newTestStorage(t)
	mr.Close()

	store := service.NewKeyValueCredentialStore(storage.For("ctx-4"))
	if _, _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
