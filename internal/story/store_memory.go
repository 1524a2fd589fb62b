package story

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// InMemoryStore keeps stories in a map for tests and storeless development.
type InMemoryStore struct {
	mu      sync.RWMutex
	stories map[uuid.UUID]*Story
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{stories: make(map[uuid.UUID]*Story)}
}

func (s *InMemoryStore) Create(_ context.Context, st *Story) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *st
	s.stories[st.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stories[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *InMemoryStore) FindBySelfBiodataID(_ context.Context, biodataID int64) (*Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.stories {
		if st.SelfBiodataID == biodataID {
			cp := *st
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Approve(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stories[id]
	if !ok || st.Status == StatusApproved {
		return sentinel.ErrNotFound
	}
	st.Status = StatusApproved
	return nil
}

func (s *InMemoryStore) ListApproved(_ context.Context, limit int) ([]*Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Story
	for _, st := range s.stories {
		if st.Status == StatusApproved {
			cp := *st
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) ListPending(_ context.Context) ([]*Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Story
	for _, st := range s.stories {
		if st.Status == StatusPending {
			cp := *st
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.stories)), nil
}

func (s *InMemoryStore) CountByStatus(_ context.Context, status Status) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, st := range s.stories {
		if st.Status == status {
			n++
		}
	}
	return n, nil
}
