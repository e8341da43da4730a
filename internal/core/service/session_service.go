package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
)

// SessionService is the authoritative in-memory session of one browser
// context. It writes through to its CredentialStore and notifies subscribers
// after every transition.
type SessionService struct {
	store ports.CredentialStore
	log   zerolog.Logger

	// transition serialises store write + state replacement so concurrent
	// login/logout calls on the same context cannot interleave.
	transition sync.Mutex
	initOnce   sync.Once
	initErr    error

	mu     sync.RWMutex
	state  domain.SessionState
	subs   map[int]func(domain.SessionChange)
	nextID int
}

// NewSessionService returns an empty, uninitialised session bound to store.
func NewSessionService(store ports.CredentialStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		store: store,
		log:   log,
		subs:  make(map[int]func(domain.SessionChange)),
	}
}

// Initialize rehydrates the session from the credential store. Only the first
// call has any effect. A load failure leaves the session empty and is returned.
func (s *SessionService) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.transition.Lock()
		defer s.transition.Unlock()

		cred, ok, err := s.store.Load(ctx)
		if err != nil {
			s.initErr = fmt.Errorf("rehydrate session: %w", err)
			s.log.Warn().Err(err).Msg("credential store unreadable, starting logged out")
			return
		}
		if !ok {
			return
		}

		s.replace(domain.SessionState{Authenticated: true, Role: cred.Role}, domain.ReasonRehydrated)
	})
	return s.initErr
}

// Login persists the credential and replaces the session with it. Nothing
// changes in memory if the store write fails.
func (s *SessionService) Login(ctx context.Context, token string, role domain.Role) error {
	if token == "" || !role.Valid() {
		return domain.ErrInvalidCredential
	}

	s.transition.Lock()
	defer s.transition.Unlock()

	if err := s.store.Save(ctx, domain.Credential{Token: token, Role: role}); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	s.replace(domain.SessionState{Authenticated: true, Role: role}, domain.ReasonLoggedIn)
	return nil
}

// Logout clears the store and empties the session. The in-memory session is
// always emptied; a store failure is logged and returned.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.clear(ctx, domain.ReasonLoggedOut)
}

// Expire is Logout for a credential the backend no longer accepts.
func (s *SessionService) Expire(ctx context.Context) error {
	return s.clear(ctx, domain.ReasonExpired)
}

func (s *SessionService) clear(ctx context.Context, reason domain.ChangeReason) error {
	s.transition.Lock()
	defer s.transition.Unlock()

	err := s.store.Clear(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("reason", string(reason)).Msg("credential store clear failed")
		err = fmt.Errorf("%s: %w", reason, err)
	}

	s.replace(domain.SessionState{}, reason)
	return err
}

// State returns a snapshot of the session.
func (s *SessionService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Credentials exposes the read side of the session's store for the backend
// transport, which resolves the token on every request.
func (s *SessionService) Credentials() ports.CredentialSource {
	return s.store
}

// Subscribe registers fn for every subsequent transition. The returned func
// removes the subscription.
func (s *SessionService) Subscribe(fn func(domain.SessionChange)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// replace swaps the whole state and notifies subscribers outside the lock.
// Callers hold s.transition.
func (s *SessionService) replace(next domain.SessionState, reason domain.ChangeReason) {
	s.mu.Lock()
	change := domain.SessionChange{Previous: s.state, Current: next, Reason: reason}
	s.state = next
	subs := make([]func(domain.SessionChange), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(change)
	}
}
