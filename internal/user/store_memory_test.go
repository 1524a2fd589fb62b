package user

import (
	"context"
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

func (s *InMemoryStoreSuite) seed(email string, role Role, sub Subscription) *User {
	u := &User{
		ID:               uuid.New(),
		Email:            email,
		Name:             "Test User",
		Role:             role,
		SubscriptionType: sub,
	}
	s.Require().NoError(s.store.Create(context.Background(), u))
	return u
}

func (s *InMemoryStoreSuite) TestCreate() {
	s.Run("rejects a duplicate email", func() {
		s.seed("dup@example.com", RoleMember, SubscriptionFree)
		err := s.store.Create(context.Background(), &User{ID: uuid.New(), Email: "dup@example.com"})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("duplicate detection is case-insensitive", func() {
		s.seed("Case@Example.com", RoleMember, SubscriptionFree)
		err := s.store.Create(context.Background(), &User{ID: uuid.New(), Email: "case@example.com"})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *InMemoryStoreSuite) TestLookups() {
	s.Run("finds by email regardless of case", func() {
		u := s.seed("jane@example.com", RoleMember, SubscriptionFree)
		found, err := s.store.FindByEmail(context.Background(), "JANE@example.com")
		s.Require().NoError(err)
		s.Equal(u.ID, found.ID)
	})

	s.Run("returns ErrNotFound for an unknown email", func() {
		_, err := s.store.FindByEmail(context.Background(), "missing@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned records are copies", func() {
		u := s.seed("copy@example.com", RoleMember, SubscriptionFree)
		found, err := s.store.FindByID(context.Background(), u.ID)
		s.Require().NoError(err)
		found.Role = RoleAdmin

		again, err := s.store.FindByID(context.Background(), u.ID)
		s.Require().NoError(err)
		s.Equal(RoleMember, again.Role)
	})
}

func (s *InMemoryStoreSuite) TestSetRole() {
	s.Run("promotes a member", func() {
		u := s.seed("member@example.com", RoleMember, SubscriptionFree)
		s.Require().NoError(s.store.SetRole(context.Background(), u.ID, RoleAdmin))

		found, err := s.store.FindByID(context.Background(), u.ID)
		s.Require().NoError(err)
		s.Equal(RoleAdmin, found.Role)
	})

	s.Run("returns ErrNotFound when already admin", func() {
		u := s.seed("admin@example.com", RoleAdmin, SubscriptionFree)
		err := s.store.SetRole(context.Background(), u.ID, RoleAdmin)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound for an unknown id", func() {
		err := s.store.SetRole(context.Background(), uuid.New(), RoleAdmin)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestSubscriptions() {
	s.Run("SetSubscription refuses a no-op transition", func() {
		u := s.seed("premium@example.com", RoleMember, SubscriptionPremium)
		err := s.store.SetSubscription(context.Background(), u.ID, SubscriptionPremium)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("SetSubscriptionByEmail is an absolute set", func() {
		u := s.seed("pending@example.com", RoleMember, SubscriptionPending)

		// Setting the same value again succeeds; retries must converge.
		s.Require().NoError(s.store.SetSubscriptionByEmail(context.Background(), u.Email, SubscriptionPending))
		s.Require().NoError(s.store.SetSubscriptionByEmail(context.Background(), u.Email, SubscriptionPending))

		found, err := s.store.FindByID(context.Background(), u.ID)
		s.Require().NoError(err)
		s.Equal(SubscriptionPending, found.SubscriptionType)
	})

	s.Run("CountBySubscription counts only the given tier", func() {
		s.seed("a@example.com", RoleMember, SubscriptionFree)
		s.seed("b@example.com", RoleMember, SubscriptionPremium)
		s.seed("c@example.com", RoleMember, SubscriptionPremium)

		n, err := s.store.CountBySubscription(context.Background(), SubscriptionPremium)
		s.Require().NoError(err)
		s.EqualValues(2, n)
	})
}

func (s *InMemoryStoreSuite) TestList() {
	s.Run("filters by case-insensitive name substring", func() {
		a := &User{ID: uuid.New(), Email: "a@example.com", Name: "Ayesha Rahman"}
		b := &User{ID: uuid.New(), Email: "b@example.com", Name: "Karim Uddin"}
		s.Require().NoError(s.store.Create(context.Background(), a))
		s.Require().NoError(s.store.Create(context.Background(), b))

		users, err := s.store.List(context.Background(), "ayesha")
		s.Require().NoError(err)
		s.Require().Len(users, 1)
		s.Equal(a.Email, users[0].Email)
	})
}
