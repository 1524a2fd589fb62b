package biodata

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// InMemoryStore keeps profiles in a map. Allocation happens under the write
// lock, so sequential ids stay collision-free under concurrency.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Biodata
	nextID  int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[uuid.UUID]*Biodata), nextID: 1}
}

func (s *InMemoryStore) Create(_ context.Context, b *Biodata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records {
		if strings.EqualFold(existing.ContactEmail, b.ContactEmail) {
			return sentinel.ErrConflict
		}
	}
	b.BiodataID = s.nextID
	s.nextID++
	cp := *b
	s.records[b.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByStorageID(_ context.Context, id uuid.UUID) (*Biodata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *InMemoryStore) FindByBiodataID(_ context.Context, biodataID int64) (*Biodata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.records {
		if b.BiodataID == biodataID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByOwner(_ context.Context, contactEmail string) (*Biodata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.records {
		if strings.EqualFold(b.ContactEmail, contactEmail) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Update(_ context.Context, b *Biodata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.records[b.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	cp := *b
	cp.BiodataID = existing.BiodataID
	cp.ContactEmail = existing.ContactEmail
	cp.Status = existing.Status
	cp.CreatedAt = existing.CreatedAt
	s.records[b.ID] = &cp
	return nil
}

func (s *InMemoryStore) ListByType(_ context.Context, t Type, exclude uuid.UUID, limit int) ([]*Biodata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Biodata
	for _, b := range s.records {
		if b.Type == t && b.ID != exclude {
			cp := *b
			out = append(out, &cp)
		}
	}
	sortByBiodataID(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) ListPremium(_ context.Context, ageAscending bool, limit int) ([]*Biodata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Biodata
	for _, b := range s.records {
		if b.Status == StatusPremium {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if ageAscending {
			return out[i].Age < out[j].Age
		}
		return out[i].Age > out[j].Age
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) ListByBiodataIDs(_ context.Context, ids []int64) ([]*Biodata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*Biodata
	for _, b := range s.records {
		if wanted[b.BiodataID] {
			cp := *b
			out = append(out, &cp)
		}
	}
	sortByBiodataID(out)
	return out, nil
}

func (s *InMemoryStore) Search(_ context.Context, f SearchFilter) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []*Biodata
	for _, b := range s.records {
		if matchesFilter(b, f) {
			cp := *b
			matched = append(matched, &cp)
		}
	}
	sortByBiodataID(matched)

	total := int64(len(matched))
	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 9
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return &SearchResult{
		Items:       matched[start:end],
		Total:       total,
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func matchesFilter(b *Biodata, f SearchFilter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(b.Name), needle) &&
			!strings.Contains(strings.ToLower(b.Occupation), needle) &&
			!strings.Contains(strings.ToLower(b.PermanentDivision), needle) {
			return false
		}
	}
	if f.MinAge > 0 && f.MaxAge > 0 && (b.Age < f.MinAge || b.Age > f.MaxAge) {
		return false
	}
	if f.Type != "" && b.Type != f.Type {
		return false
	}
	if f.Division != "" && b.PermanentDivision != f.Division {
		return false
	}
	return true
}

func (s *InMemoryStore) ListPendingPremium(_ context.Context) ([]*Biodata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Biodata
	for _, b := range s.records {
		if b.Status == StatusPending {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) SetStatusByStorageID(_ context.Context, id uuid.UUID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.records[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	b.Status = status
	return nil
}

func (s *InMemoryStore) ApprovePremiumByBiodataID(_ context.Context, biodataID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.records {
		if b.BiodataID == biodataID {
			if b.Status != StatusPending {
				return sentinel.ErrNotFound
			}
			b.Status = StatusPremium
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

func (s *InMemoryStore) CountByType(_ context.Context, t Type) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, b := range s.records {
		if b.Type == t {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) CountByStatus(_ context.Context, status Status) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, b := range s.records {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) CountByTypeAndStatus(_ context.Context, t Type, status Status) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, b := range s.records {
		if b.Type == t && b.Status == status {
			n++
		}
	}
	return n, nil
}

func sortByBiodataID(items []*Biodata) {
	sort.Slice(items, func(i, j int) bool { return items[i].BiodataID < items[j].BiodataID })
}
