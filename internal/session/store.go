package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Storage is the durable key/value home of the credential record. Both
// entries are written and cleared together. Load returns empty strings for
// entries that are absent.
type Storage interface {
	LoadCredentials(ctx context.Context) (user, token string, err error)
	SaveCredentials(ctx context.Context, user, token string) error
	ClearCredentials(ctx context.Context) error
}

// State is a snapshot of the session: signed out, or exactly one identity.
type State struct {
	user *Identity
}

// Unauthenticated is the signed-out state.
func Unauthenticated() State {
	return State{}
}

// Authenticated is the signed-in state for id.
func Authenticated(id Identity) State {
	return State{user: &id}
}

// LoggedIn reports whether the state holds an identity.
func (s State) LoggedIn() bool {
	return s.user != nil
}

// User returns a copy of the identity, if any.
func (s State) User() (Identity, bool) {
	if s.user == nil {
		return Identity{}, false
	}
	return *s.user, true
}

// IsAdmin reports whether the state holds an admin identity.
func (s State) IsAdmin() bool {
	return s.user != nil && s.user.IsAdmin()
}

func (s State) String() string {
	if s.user == nil {
		return "Unauthenticated"
	}
	return fmt.Sprintf("Authenticated(%s, %s)", s.user.Email, s.user.Role)
}

// Store is the process-wide session container. Reads always see the latest
// completed transition; subscribers run synchronously after each one.
type Store struct {
	mu      sync.RWMutex
	state   State
	storage Storage
	now     func() time.Time

	subsMu  sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// NewStore creates an Unauthenticated store backed by storage.
func NewStore(storage Storage) *Store {
	return &Store{
		storage: storage,
		now:     time.Now,
		subs:    make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.user == nil {
		return ""
	}
	return s.state.user.Token
}

// Subscribe registers fn to be called after every transition. The returned
// func removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// Initialize restores a previously persisted session. Missing, partial or
// malformed records, and JWTs past their expiry, leave the store signed
// out. It only ever moves Unauthenticated to Authenticated and reports
// whether it did.
func (s *Store) Initialize(ctx context.Context) bool {
	user, token, err := s.storage.LoadCredentials(ctx)
	if err != nil {
		slog.Debug("session restore: storage read failed", "err", err)
		return false
	}
	if user == "" || token == "" {
		if user != "" || token != "" {
			slog.Debug("session restore: partial credential record ignored")
		}
		return false
	}
	id, err := decodeIdentity(user, token)
	if err != nil {
		slog.Debug("session restore: malformed credential record ignored", "err", err)
		return false
	}
	if tokenExpired(token, s.now()) {
		slog.Debug("session restore: token expired", "email", id.Email)
		return false
	}

	s.mu.Lock()
	if s.state.LoggedIn() {
		s.mu.Unlock()
		return false
	}
	s.state = Authenticated(id)
	st := s.state
	s.mu.Unlock()

	slog.Info("session restored", "email", id.Email, "role", id.Role)
	s.notify(st)
	return true
}

// Persist writes the credential record for id. Auth actions call it before
// Login.
func (s *Store) Persist(ctx context.Context, id Identity) error {
	if err := id.Validate(); err != nil {
		return err
	}
	user, err := encodeUser(id)
	if err != nil {
		return err
	}
	if err := s.storage.SaveCredentials(ctx, user, id.Token); err != nil {
		return fmt.Errorf("persisting credentials: %w", err)
	}
	return nil
}

// Login moves to Authenticated(id), replacing any prior identity.
func (s *Store) Login(id Identity) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = Authenticated(id)
	st := s.state
	s.mu.Unlock()

	s.notify(st)
	return nil
}

// Logout clears the credential record and moves to Unauthenticated. It is
// idempotent; a storage failure is logged and does not block the
// transition.
func (s *Store) Logout(ctx context.Context) {
	if err := s.storage.ClearCredentials(ctx); err != nil {
		slog.Warn("clearing credentials failed", "err", err)
	}

	s.mu.Lock()
	was := s.state.LoggedIn()
	s.state = Unauthenticated()
	st := s.state
	s.mu.Unlock()

	if was {
		slog.Info("signed out")
		s.notify(st)
	}
}

func (s *Store) notify(st State) {
	s.subsMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
