package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/libraryhub/portal/internal/core/ports"
)

const defaultKeyPrefix = "portal"

// Storage keeps browser-context items in Redis under
// <prefix>:<context_id>:<key>. Keys carry no TTL.
type Storage struct {
	client redis.Cmdable
	prefix string
}

// NewStorage wraps client. An empty prefix falls back to "portal".
func NewStorage(client redis.Cmdable, prefix string) *Storage {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Storage{client: client, prefix: prefix}
}

// For returns the storage scoped to contextID.
func (s *Storage) For(contextID string) ports.KeyValueStorage {
	return &scoped{client: s.client, base: fmt.Sprintf("%s:%s:", s.prefix, contextID)}
}

type scoped struct {
	client redis.Cmdable
	base   string
}

func (s *scoped) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.base+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *scoped) SetItem(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.base+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *scoped) RemoveItem(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.base+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
