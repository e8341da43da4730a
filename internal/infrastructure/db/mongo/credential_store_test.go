package mongo

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/libraryhub/portal/internal/core/domain"
)

func credentialNS(mt *mtest.T) string {
	return mt.DB.Name() + "." + credentialCollection
}

func TestCredentialStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("save then load", func(mt *mtest.T) {
		store := NewCredentialStores(mt.DB).For("ctx-1")
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCursorResponse(0, credentialNS(mt), mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "ctx-1"},
				{Key: "token", Value: "tok123"},
				{Key: "role", Value: "ADMIN"},
				{Key: "updated_at", Value: int64(1700000000)},
			}),
		)

		want := domain.Credential{Token: "tok123", Role: domain.RoleAdmin}
		if err := store.Save(ctx, want); err != nil {
			mt.Fatalf("save: %v", err)
		}
		got, ok, err := store.Load(ctx)
		if err != nil || !ok {
			mt.Fatalf("load: ok=%v err=%v", ok, err)
		}
		if got != want {
			mt.Fatalf("expected %+v, got %+v", want, got)
		}
	})

	mt.Run("missing document is absent", func(mt *mtest.T) {
		store := NewCredentialStores(mt.DB).For("ctx-2")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, credentialNS(mt), mtest.FirstBatch))

		cred, ok, err := store.Load(ctx)
		if err != nil {
			mt.Fatalf("load: %v", err)
		}
		if ok || cred != (domain.Credential{}) {
			mt.Fatalf("expected absent, got %+v ok=%v", cred, ok)
		}
	})

	mt.Run("document missing a field is absent", func(mt *mtest.T) {
		store := NewCredentialStores(mt.DB).For("ctx-3")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, credentialNS(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "ctx-3"},
			{Key: "token", Value: "tok123"},
		}))

		cred, ok, err := store.Load(ctx)
		if err != nil {
			mt.Fatalf("load: %v", err)
		}
		if ok || cred != (domain.Credential{}) {
			mt.Fatalf("expected absent for token-only document, got %+v ok=%v", cred, ok)
		}
	})

	mt.Run("clear when absent succeeds", func(mt *mtest.T) {
		store := NewCredentialStores(mt.DB).For("ctx-4")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := store.Clear(ctx); err != nil {
			mt.Fatalf("clear: %v", err)
		}
	})

	mt.Run("server error is returned", func(mt *mtest.T) {
		store := NewCredentialStores(mt.DB).For("ctx-5")
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad query",
		}))

		if _, _, err := store.Load(ctx); err == nil {
			mt.Fatalf("expected load error")
		}
	})
}
