package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
)

const credentialCollection = "portal_credentials"

// CredentialStores hands out per-browser-context stores backed by one
// collection. Each context is a single document, so a save is atomic.
type CredentialStores struct {
	coll *mongo.Collection
}

func NewCredentialStores(db *mongo.Database) *CredentialStores {
	return &CredentialStores{coll: db.Collection(credentialCollection)}
}

// For returns the store of contextID.
func (s *CredentialStores) For(contextID string) ports.CredentialStore {
	return &CredentialStore{coll: s.coll, id: contextID}
}

type credentialDoc struct {
	ID        string `bson:"_id"`
	Token     string `bson:"token"`
	Role      string `bson:"role"`
	UpdatedAt int64  `bson:"updated_at"`
}

// CredentialStore is the composite-record credential store of one context.
type CredentialStore struct {
	coll *mongo.Collection
	id   string
}

var _ ports.CredentialStore = (*CredentialStore)(nil)

func (s *CredentialStore) Save(ctx context.Context, cred domain.Credential) error {
	doc := credentialDoc{
		ID:        s.id,
		Token:     cred.Token,
		Role:      cred.Role.String(),
		UpdatedAt: time.Now().UTC().Unix(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.id}); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Load(ctx context.Context) (domain.Credential, bool, error) {
	var doc credentialDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": s.id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Credential{}, false, nil
		}
		return domain.Credential{}, false, fmt.Errorf("load credential: %w", err)
	}

	cred := domain.Credential{Token: doc.Token, Role: domain.Role(doc.Role)}
	if !cred.Complete() {
		return domain.Credential{}, false, nil
	}
	return cred, true, nil
}
