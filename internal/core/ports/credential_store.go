package ports

import (
	"context"

	"github.com/libraryhub/portal/internal/core/domain"
)

// KeyValueStorage is a string key/value store scoped to one browser context,
// with the semantics of the browser's localStorage.
type KeyValueStorage interface {
	// GetItem reports whether key is present and its value.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// CredentialSource is the read side of a credential store. The backend
// transport depends on nothing else.
type CredentialSource interface {
	// Load returns the stored credential. A missing or partial record is
	// reported as (zero, false, nil).
	Load(ctx context.Context) (domain.Credential, bool, error)
}

// CredentialStore persists the session credential of one browser context.
// Only the session service writes to it.
type CredentialStore interface {
	CredentialSource
	Save(ctx context.Context, cred domain.Credential) error
	// Clear removes the record. Clearing an empty store succeeds.
	Clear(ctx context.Context) error
}

// CredentialStoreFactory returns the store bound to a browser context.
type CredentialStoreFactory func(contextID string) CredentialStore
