// Package users is an in-memory user directory with simulated latency.
package users

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// User is a directory entry.
type User struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsDeveloper bool   `json:"is_developer"`
}

// NewUser holds the fields accepted by Create.
type NewUser struct {
	FirstName   string
	LastName    string
	IsDeveloper bool
}

// Patch holds the fields Update may change. Nil fields are left as they are.
type Patch struct {
	FirstName   *string
	LastName    *string
	IsDeveloper *bool
}

// Store keeps users in memory, keyed by id. Create it once and pass it to
// whatever needs it.
//
// Thread-safety: Store is safe for concurrent use via internal mutex.
type Store struct {
	mu      sync.RWMutex
	users   map[string]User
	order   []string
	latency time.Duration
	newID   func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLatency delays every operation by d, or until its context is done.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// WithIDFunc overrides the UUIDv4 id generator.
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		users: make(map[string]User),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSeededStore creates a store holding the two demo users.
func NewSeededStore(opts ...Option) *Store {
	s := NewStore(opts...)
	for _, u := range []NewUser{
		{FirstName: "Robin", LastName: "Wieruch", IsDeveloper: true},
		{FirstName: "Dave", LastName: "Davddis"},
	} {
		s.insert(u)
	}
	return s
}

// List returns every user in creation order.
func (s *Store) List(ctx context.Context) ([]User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.users[id])
	}
	return out, nil
}

// Get returns the user with the given id.
func (s *Store) Get(ctx context.Context, id string) (User, error) {
	if err := s.wait(ctx); err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, fmt.Errorf("get user %s: %w", id, ErrUserNotFound)
	}
	return u, nil
}

// Create adds a user. Both name fields must be non-blank.
func (s *Store) Create(ctx context.Context, in NewUser) (User, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return User{}, fmt.Errorf("create user: %w", ErrInvalidUser)
	}
	if err := s.wait(ctx); err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	u := s.insert(in)
	log.Debug().Str("user", u.ID).Msg("user created")
	return u, nil
}

// Update merges the set fields of p into the user with the given id.
// A patch that would blank a name is rejected.
func (s *Store) Update(ctx context.Context, id string, p Patch) (User, error) {
	if (p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "") ||
		(p.LastName != nil && strings.TrimSpace(*p.LastName) == "") {
		return User{}, fmt.Errorf("update user %s: %w", id, ErrInvalidUser)
	}
	if err := s.wait(ctx); err != nil {
		return User{}, fmt.Errorf("update user: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, fmt.Errorf("update user %s: %w", id, ErrUserNotFound)
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.IsDeveloper != nil {
		u.IsDeveloper = *p.IsDeveloper
	}
	s.users[id] = u
	log.Debug().Str("user", id).Msg("user updated")
	return u, nil
}

// Delete removes the user with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("delete user %s: %w", id, ErrUserNotFound)
	}
	delete(s.users, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	log.Debug().Str("user", id).Msg("user deleted")
	return nil
}

func (s *Store) insert(in NewUser) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := User{
		ID:          s.newID(),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		IsDeveloper: in.IsDeveloper,
	}
	s.users[u.ID] = u
	s.order = append(s.order, u.ID)
	return u
}

// wait simulates the store's latency.
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
