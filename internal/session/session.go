// Package session tracks which user is signed in on a client. The backing
// Store is injected so tests can use MemoryStore.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/fjod/go_foodcart/internal/domain"
)

type Session struct {
	mu    sync.RWMutex
	store Store
	user  *domain.PublicUser
}

// Open restores the last signed-in user from store, if any.
func Open(ctx context.Context, store Store) (*Session, error) {
	s := &Session{store: store}
	user, err := store.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	s.user = user
	return s, nil
}

func (s *Session) SignIn(ctx context.Context, user domain.PublicUser) error {
	if err := s.store.Save(ctx, user); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// SignOut forgets the user even when the store fails to clear.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return s.store.Clear(ctx)
}

func (s *Session) User() (domain.PublicUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.PublicUser{}, false
	}
	return *s.user, true
}

func (s *Session) Authenticated() bool {
	_, ok := s.User()
	return ok
}
