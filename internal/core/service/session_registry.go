package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"
	"weak"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
)

const (
	defaultRegistrySize = 1024
	rehydrateTimeout    = 5 * time.Second
)

// ErrEmptyContextID is returned when a session is requested without a
// browser context.
var ErrEmptyContextID = errors.New("empty browser context id")

// SessionRegistry owns one SessionService per browser context. Services are
// kept in a bounded LRU. An evicted service that is still referenced, for
// example by an in-flight request, is handed out again instead of a second
// instance, so a context never has two diverging sessions. Once unreferenced
// it is rebuilt from its durable store on next access, like a page reload.
type SessionRegistry struct {
	stores    ports.CredentialStoreFactory
	publisher ports.SessionEventPublisher
	log       zerolog.Logger
	now       func() time.Time

	cache *lru.Cache[string, *SessionService]
	group singleflight.Group

	mu   sync.Mutex
	live map[string]weak.Pointer[SessionService]
}

// NewSessionRegistry builds a registry holding at most size sessions in its
// cache. publisher may be nil.
func NewSessionRegistry(
	stores ports.CredentialStoreFactory,
	publisher ports.SessionEventPublisher,
	size int,
	log zerolog.Logger,
) (*SessionRegistry, error) {
	if size <= 0 {
		size = defaultRegistrySize
	}
	cache, err := lru.New[string, *SessionService](size)
	if err != nil {
		return nil, err
	}
	return &SessionRegistry{
		stores:    stores,
		publisher: publisher,
		log:       log,
		now:       time.Now,
		cache:     cache,
		live:      make(map[string]weak.Pointer[SessionService]),
	}, nil
}

// Get returns the initialised session of contextID, creating and rehydrating
// it on first use. A store that cannot be read fails with
// domain.ErrSessionStoreUnavailable and nothing is cached, so the next
// request retries the rehydration.
func (r *SessionRegistry) Get(ctx context.Context, contextID string) (*SessionService, error) {
	if contextID == "" {
		return nil, ErrEmptyContextID
	}
	if svc, ok := r.cache.Get(contextID); ok {
		return svc, nil
	}

	v, err, _ := r.group.Do(contextID, func() (any, error) {
		if svc, ok := r.cache.Get(contextID); ok {
			return svc, nil
		}
		if svc := r.lookupLive(contextID); svc != nil {
			r.cache.Add(contextID, svc)
			return svc, nil
		}

		svc := NewSessionService(r.stores(contextID), r.log.With().Str("context_id", contextID).Logger())
		svc.Subscribe(r.observer(contextID))

		// The rehydrated session outlives the request that triggered it.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rehydrateTimeout)
		defer cancel()
		if err := svc.Initialize(loadCtx); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrSessionStoreUnavailable, err)
		}

		r.track(contextID, svc)
		r.cache.Add(contextID, svc)
		return svc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*SessionService), nil
}

// Len reports the number of cached sessions.
func (r *SessionRegistry) Len() int {
	return r.cache.Len()
}

func (r *SessionRegistry) lookupLive(contextID string) *SessionService {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wp, ok := r.live[contextID]; ok {
		return wp.Value()
	}
	return nil
}

// track remembers svc until it is garbage collected.
func (r *SessionRegistry) track(contextID string, svc *SessionService) {
	r.mu.Lock()
	r.live[contextID] = weak.Make(svc)
	r.mu.Unlock()

	runtime.AddCleanup(svc, r.forget, contextID)
}

func (r *SessionRegistry) forget(contextID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// A newer service may already be tracked under the same context.
	if wp, ok := r.live[contextID]; ok && wp.Value() == nil {
		delete(r.live, contextID)
	}
}

func (r *SessionRegistry) observer(contextID string) func(domain.SessionChange) {
	return func(change domain.SessionChange) {
		role := change.Current.Role
		if !change.Current.Authenticated {
			role = change.Previous.Role
		}

		r.log.Info().
			Str("context_id", contextID).
			Str("reason", string(change.Reason)).
			Str("role", role.String()).
			Msg("session changed")

		if r.publisher == nil {
			return
		}
		r.publisher.Publish(domain.SessionEvent{
			ContextID: contextID,
			Reason:    change.Reason,
			Role:      role,
			At:        r.now().UTC(),
		})
	}
}
