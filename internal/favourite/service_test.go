package favourite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ana-yet/soulmate-server-side-code/internal/biodata"
	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
)

type ServiceSuite struct {
	suite.Suite
	store    *InMemoryStore
	profiles *biodata.InMemoryStore
	service  *Service
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.profiles = biodata.NewInMemoryStore()
	s.service = NewService(s.store, s.profiles)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) seedProfile(email string) *biodata.Biodata {
	b := &biodata.Biodata{ID: uuid.New(), ContactEmail: email, Type: biodata.TypeMale, Name: "P " + email}
	s.Require().NoError(s.profiles.Create(context.Background(), b))
	return b
}

func (s *ServiceSuite) TestAdd() {
	s.Run("bookmarks a profile once", func() {
		b := s.seedProfile("t1@example.com")
		s.Require().NoError(s.service.Add(context.Background(), "fan@example.com", b.BiodataID))

		err := s.service.Add(context.Background(), "fan@example.com", b.BiodataID)
		s.True(domerrors.Is(err, domerrors.CodeConflict))
	})

	s.Run("the pair key is case-insensitive on email", func() {
		b := s.seedProfile("t2@example.com")
		s.Require().NoError(s.service.Add(context.Background(), "Fan@Example.com", b.BiodataID))

		err := s.service.Add(context.Background(), "fan@example.com", b.BiodataID)
		s.True(domerrors.Is(err, domerrors.CodeConflict))
	})

	s.Run("requires both fields", func() {
		err := s.service.Add(context.Background(), "", 1)
		s.True(domerrors.Is(err, domerrors.CodeValidation))

		err = s.service.Add(context.Background(), "fan@example.com", 0)
		s.True(domerrors.Is(err, domerrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestRemove() {
	s.Run("removes an existing bookmark", func() {
		b := s.seedProfile("t3@example.com")
		s.Require().NoError(s.service.Add(context.Background(), "fan@example.com", b.BiodataID))

		s.Require().NoError(s.service.Remove(context.Background(), "fan@example.com", b.BiodataID))

		exists, err := s.service.Check(context.Background(), "fan@example.com", b.BiodataID)
		s.Require().NoError(err)
		s.False(exists)
	})

	s.Run("removing an absent pair is not found", func() {
		err := s.service.Remove(context.Background(), "fan@example.com", 4242)
		s.True(domerrors.Is(err, domerrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestList() {
	s.Run("expands bookmarks into profile records", func() {
		first := s.seedProfile("t4@example.com")
		second := s.seedProfile("t5@example.com")
		s.seedProfile("unfavourited@example.com")

		s.Require().NoError(s.service.Add(context.Background(), "fan@example.com", first.BiodataID))
		s.Require().NoError(s.service.Add(context.Background(), "fan@example.com", second.BiodataID))

		profiles, err := s.service.List(context.Background(), "fan@example.com")
		s.Require().NoError(err)
		s.Require().Len(profiles, 2)
	})

	s.Run("an empty list stays empty", func() {
		profiles, err := s.service.List(context.Background(), "lonely@example.com")
		s.Require().NoError(err)
		s.Empty(profiles)
	})
}
