package biodata

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func (s *InMemoryStoreSuite) SetupSubTest() {
	s.SetupTest()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) seed(email string, t Type, age int) *Biodata {
	b := &Biodata{
		ID:           uuid.New(),
		ContactEmail: email,
		Type:         t,
		Status:       StatusFree,
		Name:         "Profile " + email,
		Age:          age,
	}
	s.Require().NoError(s.store.Create(context.Background(), b))
	return b
}

func (s *InMemoryStoreSuite) TestAllocator() {
	s.Run("assigns strictly increasing public ids starting at one", func() {
		first := s.seed("one@example.com", TypeMale, 25)
		second := s.seed("two@example.com", TypeFemale, 24)
		third := s.seed("three@example.com", TypeMale, 30)

		s.EqualValues(1, first.BiodataID)
		s.EqualValues(2, second.BiodataID)
		s.EqualValues(3, third.BiodataID)
	})

	s.Run("concurrent creates never collide", func() {
		store := NewInMemoryStore()
		const workers = 50

		var wg sync.WaitGroup
		ids := make([]int64, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				b := &Biodata{
					ID:           uuid.New(),
					ContactEmail: fmt.Sprintf("worker%d@example.com", i),
					Type:         TypeMale,
				}
				if err := store.Create(context.Background(), b); err == nil {
					ids[i] = b.BiodataID
				}
			}(i)
		}
		wg.Wait()

		seen := make(map[int64]bool, workers)
		for _, id := range ids {
			s.Require().Positive(id)
			s.Require().False(seen[id], "biodata id %d allocated twice", id)
			seen[id] = true
		}
	})

	s.Run("rejects a second profile for the same owner", func() {
		s.seed("owner@example.com", TypeMale, 25)
		err := s.store.Create(context.Background(), &Biodata{
			ID:           uuid.New(),
			ContactEmail: "OWNER@example.com",
			Type:         TypeMale,
		})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *InMemoryStoreSuite) TestUpdate() {
	s.Run("preserves id, owner, and status", func() {
		b := s.seed("stable@example.com", TypeFemale, 23)
		s.Require().NoError(s.store.SetStatusByStorageID(context.Background(), b.ID, StatusPremium))

		update := &Biodata{
			ID:           b.ID,
			BiodataID:    999,
			ContactEmail: "hijack@example.com",
			Status:       StatusFree,
			Type:         TypeFemale,
			Name:         "Updated Name",
			Age:          24,
		}
		s.Require().NoError(s.store.Update(context.Background(), update))

		found, err := s.store.FindByStorageID(context.Background(), b.ID)
		s.Require().NoError(err)
		s.Equal(b.BiodataID, found.BiodataID)
		s.Equal("stable@example.com", found.ContactEmail)
		s.Equal(StatusPremium, found.Status)
		s.Equal("Updated Name", found.Name)
	})
}

func (s *InMemoryStoreSuite) TestPremiumTransitions() {
	s.Run("approve moves pending to premium", func() {
		b := s.seed("pending@example.com", TypeMale, 28)
		s.Require().NoError(s.store.SetStatusByStorageID(context.Background(), b.ID, StatusPending))

		s.Require().NoError(s.store.ApprovePremiumByBiodataID(context.Background(), b.BiodataID))

		found, err := s.store.FindByBiodataID(context.Background(), b.BiodataID)
		s.Require().NoError(err)
		s.Equal(StatusPremium, found.Status)
	})

	s.Run("approve refuses a free profile", func() {
		b := s.seed("free@example.com", TypeMale, 28)
		err := s.store.ApprovePremiumByBiodataID(context.Background(), b.BiodataID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("approve refuses an already premium profile", func() {
		b := s.seed("done@example.com", TypeMale, 28)
		s.Require().NoError(s.store.SetStatusByStorageID(context.Background(), b.ID, StatusPending))
		s.Require().NoError(s.store.ApprovePremiumByBiodataID(context.Background(), b.BiodataID))

		err := s.store.ApprovePremiumByBiodataID(context.Background(), b.BiodataID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestSearch() {
	s.Run("applies filters and paginates", func() {
		for i := 1; i <= 12; i++ {
			b := &Biodata{
				ID:                uuid.New(),
				ContactEmail:      fmt.Sprintf("p%d@example.com", i),
				Type:              TypeMale,
				Age:               20 + i,
				PermanentDivision: "Dhaka",
			}
			s.Require().NoError(s.store.Create(context.Background(), b))
		}

		result, err := s.store.Search(context.Background(), SearchFilter{
			Type:     TypeMale,
			Division: "Dhaka",
			Page:     2,
			Limit:    5,
		})
		s.Require().NoError(err)
		s.EqualValues(12, result.Total)
		s.Len(result.Items, 5)
		s.Equal(2, result.CurrentPage)
		s.Equal(3, result.TotalPages)
		// Second page continues where the first left off.
		s.EqualValues(6, result.Items[0].BiodataID)
	})

	s.Run("age range applies only when both bounds are set", func() {
		s.seed("young@example.com", TypeFemale, 19)
		s.seed("older@example.com", TypeFemale, 35)

		result, err := s.store.Search(context.Background(), SearchFilter{MinAge: 30, MaxAge: 0})
		s.Require().NoError(err)
		s.EqualValues(2, result.Total)

		result, err = s.store.Search(context.Background(), SearchFilter{MinAge: 30, MaxAge: 40})
		s.Require().NoError(err)
		s.EqualValues(1, result.Total)
	})
}
