package service

import (
	"context"
	"fmt"

	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
)

// Storage keys of the two-key credential record.
const (
	TokenKey = "token"
	RoleKey  = "role"
)

// KeyValueCredentialStore keeps the credential under two independent keys.
// The writes are not atomic; a record with only one key present is treated
// as absent on load.
type KeyValueCredentialStore struct {
	storage ports.KeyValueStorage
}

var _ ports.CredentialStore = (*KeyValueCredentialStore)(nil)

func NewKeyValueCredentialStore(storage ports.KeyValueStorage) *KeyValueCredentialStore {
	return &KeyValueCredentialStore{storage: storage}
}

func (s *KeyValueCredentialStore) Save(ctx context.Context, cred domain.Credential) error {
	if err := s.storage.SetItem(ctx, TokenKey, cred.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := s.storage.SetItem(ctx, RoleKey, cred.Role.String()); err != nil {
		return fmt.Errorf("save role: %w", err)
	}
	return nil
}

func (s *KeyValueCredentialStore) Clear(ctx context.Context) error {
	tokenErr := s.storage.RemoveItem(ctx, TokenKey)
	roleErr := s.storage.RemoveItem(ctx, RoleKey)
	if tokenErr != nil {
		return fmt.Errorf("clear token: %w", tokenErr)
	}
	if roleErr != nil {
		return fmt.Errorf("clear role: %w", roleErr)
	}
	return nil
}

func (s *KeyValueCredentialStore) Load(ctx context.Context) (domain.Credential, bool, error) {
	token, ok, err := s.storage.GetItem(ctx, TokenKey)
	if err != nil {
		return domain.Credential{}, false, fmt.Errorf("load token: %w", err)
	}
	if !ok || token == "" {
		return domain.Credential{}, false, nil
	}

	raw, ok, err := s.storage.GetItem(ctx, RoleKey)
	if err != nil {
		return domain.Credential{}, false, fmt.Errorf("load role: %w", err)
	}
	if !ok || raw == "" {
		return domain.Credential{}, false, nil
	}

	// The role is kept verbatim; an unrecognised role still counts as a session
	// and the route guard sends it to the forbidden page.
	return domain.Credential{Token: token, Role: domain.Role(raw)}, true, nil
}
