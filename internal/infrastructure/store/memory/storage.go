// Package memory keeps browser-context storage in process memory. Contents
// survive registry eviction but not a process restart.
package memory

import (
	"context"
	"sync"

	"github.com/libraryhub/portal/internal/core/ports"
)

// Store holds the key/value items of every browser context.
type Store struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

func NewStore() *Store {
	return &Store{items: make(map[string]map[string]string)}
}

// For returns the storage scoped to contextID.
func (s *Store) For(contextID string) ports.KeyValueStorage {
	return &scoped{store: s, id: contextID}
}

type scoped struct {
	store *Store
	id    string
}

func (c *scoped) GetItem(_ context.Context, key string) (string, bool, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	v, ok := c.store.items[c.id][key]
	return v, ok, nil
}

func (c *scoped) SetItem(_ context.Context, key, value string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	bucket, ok := c.store.items[c.id]
	if !ok {
		bucket = make(map[string]string)
		c.store.items[c.id] = bucket
	}
	bucket[key] = value
	return nil
}

func (c *scoped) RemoveItem(_ context.Context, key string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	bucket, ok := c.store.items[c.id]
	if !ok {
		return nil
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(c.store.items, c.id)
	}
	return nil
}
