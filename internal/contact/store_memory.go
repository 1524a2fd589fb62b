package contact

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// InMemoryStore keeps requests in a map. The triple check runs under the
// write lock, giving the same isolation the database constraint provides.
type InMemoryStore struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*Request
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{requests: make(map[uuid.UUID]*Request)}
}

func (s *InMemoryStore) Create(_ context.Context, r *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.requests {
		if strings.EqualFold(existing.RequesterEmail, r.RequesterEmail) &&
			existing.RequestedBiodataID == r.RequestedBiodataID &&
			existing.RequesterName == r.RequesterName {
			return sentinel.ErrConflict
		}
	}
	cp := *r
	s.requests[r.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *InMemoryStore) ListByRequester(_ context.Context, email string) ([]*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Request
	for _, r := range s.requests {
		if strings.EqualFold(r.RequesterEmail, email) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out, nil
}

func (s *InMemoryStore) Approve(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok || r.Status == StatusApproved {
		return sentinel.ErrNotFound
	}
	r.Status = StatusApproved
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID, requesterEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok || !strings.EqualFold(r.RequesterEmail, requesterEmail) {
		return sentinel.ErrNotFound
	}
	delete(s.requests, id)
	return nil
}

func (s *InMemoryStore) ListPending(_ context.Context) ([]*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Request
	for _, r := range s.requests {
		if r.Status == StatusPending {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return out, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.requests)), nil
}

func (s *InMemoryStore) CountByStatus(_ context.Context, status Status) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, r := range s.requests {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) SumApprovedPrice(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum int64
	for _, r := range s.requests {
		if r.Status == StatusApproved {
			sum += r.Price
		}
	}
	return sum, nil
}
