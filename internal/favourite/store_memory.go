package favourite

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

type pairKey struct {
	email     string
	biodataID int64
}

// InMemoryStore keeps favourites keyed by their pair, which makes the
// uniqueness invariant structural.
type InMemoryStore struct {
	mu    sync.RWMutex
	pairs map[pairKey]*Favourite
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{pairs: make(map[pairKey]*Favourite)}
}

func key(email string, biodataID int64) pairKey {
	return pairKey{email: strings.ToLower(email), biodataID: biodataID}
}

func (s *InMemoryStore) Add(_ context.Context, f *Favourite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(f.UserEmail, f.BiodataID)
	if _, ok := s.pairs[k]; ok {
		return sentinel.ErrConflict
	}
	cp := *f
	s.pairs[k] = &cp
	return nil
}

func (s *InMemoryStore) Remove(_ context.Context, userEmail string, biodataID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(userEmail, biodataID)
	if _, ok := s.pairs[k]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.pairs, k)
	return nil
}

func (s *InMemoryStore) Exists(_ context.Context, userEmail string, biodataID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.pairs[key(userEmail, biodataID)]
	return ok, nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userEmail string) ([]*Favourite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Favourite
	for k, f := range s.pairs {
		if k.email == strings.ToLower(userEmail) {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BiodataID < out[j].BiodataID })
	return out, nil
}

func (s *InMemoryStore) CountByUser(_ context.Context, userEmail string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for k := range s.pairs {
		if k.email == strings.ToLower(userEmail) {
			n++
		}
	}
	return n, nil
}
