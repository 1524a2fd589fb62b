package user

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// InMemoryStore keeps users in a map for tests and storeless development.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[uuid.UUID]*User)}
}

func (s *InMemoryStore) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return sentinel.ErrConflict
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context, search string) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*User
	for _, u := range s.users {
		if search == "" || strings.Contains(strings.ToLower(u.Name), strings.ToLower(search)) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *InMemoryStore) SetRole(_ context.Context, id uuid.UUID, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || u.Role == role {
		return sentinel.ErrNotFound
	}
	u.Role = role
	return nil
}

func (s *InMemoryStore) SetSubscription(_ context.Context, id uuid.UUID, sub Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || u.SubscriptionType == sub {
		return sentinel.ErrNotFound
	}
	u.SubscriptionType = sub
	return nil
}

func (s *InMemoryStore) SetSubscriptionByEmail(_ context.Context, email string, sub Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			u.SubscriptionType = sub
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *InMemoryStore) CountBySubscription(_ context.Context, sub Subscription) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, u := range s.users {
		if u.SubscriptionType == sub {
			n++
		}
	}
	return n, nil
}
