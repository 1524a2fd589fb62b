package contact

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/ana-yet/soulmate-server-side-code/internal/audit"
	"github.com/ana-yet/soulmate-server-side-code/internal/biodata"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/metrics"
	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
)

const testPrice = 5

type ServiceSuite struct {
	suite.Suite
	store    *InMemoryStore
	profiles *biodata.InMemoryStore
	auditor  *audit.MemoryPublisher
	service  *Service
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.profiles = biodata.NewInMemoryStore()
	s.auditor = audit.NewMemoryPublisher()
	s.service = NewService(s.store, s.profiles, s.auditor, metrics.NewWith(prometheus.NewRegistry()), testPrice)
}

func (s *ServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) seedProfile(email, mobile string) *biodata.Biodata {
	b := &biodata.Biodata{
		ID:           uuid.New(),
		ContactEmail: email,
		Type:         biodata.TypeFemale,
		Name:         "Target Profile",
		MobileNumber: mobile,
	}
	s.Require().NoError(s.profiles.Create(context.Background(), b))
	return b
}

func (s *ServiceSuite) TestCreate() {
	s.Run("opens a pending request at the fixed fee", func() {
		target := s.seedProfile("target@example.com", "01700000000")

		r, err := s.service.Create(context.Background(), "asker@example.com", target.BiodataID, "Asker")
		s.Require().NoError(err)
		s.Equal(StatusPending, r.Status)
		s.EqualValues(testPrice, r.Price)
		s.False(r.RequestedAt.IsZero())
	})

	s.Run("missing fields are a validation failure", func() {
		_, err := s.service.Create(context.Background(), "", 1, "Asker")
		s.True(domerrors.Is(err, domerrors.CodeValidation))

		_, err = s.service.Create(context.Background(), "asker@example.com", 0, "Asker")
		s.True(domerrors.Is(err, domerrors.CodeValidation))

		_, err = s.service.Create(context.Background(), "asker@example.com", 1, "")
		s.True(domerrors.Is(err, domerrors.CodeValidation))
	})

	s.Run("an identical outstanding triple is a conflict", func() {
		target := s.seedProfile("dup-target@example.com", "01700000001")

		_, err := s.service.Create(context.Background(), "asker@example.com", target.BiodataID, "Asker")
		s.Require().NoError(err)

		_, err = s.service.Create(context.Background(), "asker@example.com", target.BiodataID, "Asker")
		s.True(domerrors.Is(err, domerrors.CodeConflict))
	})

	s.Run("a different requester name opens a separate request", func() {
		target := s.seedProfile("multi-target@example.com", "01700000002")

		_, err := s.service.Create(context.Background(), "asker@example.com", target.BiodataID, "Asker")
		s.Require().NoError(err)
		_, err = s.service.Create(context.Background(), "asker@example.com", target.BiodataID, "Other Name")
		s.Require().NoError(err)
	})
}

func (s *ServiceSuite) TestDisclosureGating() {
	s.Run("pending requests never expose contact fields", func() {
		target := s.seedProfile("secret@example.com", "01711111111")
		_, err := s.service.Create(context.Background(), "asker@example.com", target.BiodataID, "Asker")
		s.Require().NoError(err)

		views, err := s.service.ListForRequester(context.Background(), "asker@example.com")
		s.Require().NoError(err)
		s.Require().Len(views, 1)
		s.Equal(StatusPending, views[0].Status)
		s.Nil(views[0].Mobile)
		s.Nil(views[0].Email)
		s.Equal("Target Profile", views[0].Name)
	})

	s.Run("approval reveals mobile and email", func() {
		target := s.seedProfile("reveal@example.com", "01722222222")
		r, err := s.service.Create(context.Background(), "asker2@example.com", target.BiodataID, "Asker")
		s.Require().NoError(err)

		s.Require().NoError(s.service.Approve(context.Background(), "root@example.com", r.ID))

		views, err := s.service.ListForRequester(context.Background(), "asker2@example.com")
		s.Require().NoError(err)
		s.Require().Len(views, 1)
		s.Equal(StatusApproved, views[0].Status)
		s.Require().NotNil(views[0].Mobile)
		s.Require().NotNil(views[0].Email)
		s.Equal("01722222222", *views[0].Mobile)
		s.Equal("reveal@example.com", *views[0].Email)
	})

	s.Run("requests whose target vanished are omitted", func() {
		err := s.store.Create(context.Background(), &Request{
			ID:                 uuid.New(),
			RequesterEmail:     "asker3@example.com",
			RequestedBiodataID: 9999,
			RequesterName:      "Asker",
			Status:             StatusPending,
		})
		s.Require().NoError(err)

		views, err := s.service.ListForRequester(context.Background(), "asker3@example.com")
		s.Require().NoError(err)
		s.Empty(views)
	})
}

func (s *ServiceSuite) TestApprove() {
	s.Run("approval is monotone", func() {
		target := s.seedProfile("mono@example.com", "01733333333")
		r, err := s.service.Create(context.Background(), "asker@example.com", target.BiodataID, "Asker")
		s.Require().NoError(err)

		s.Require().NoError(s.service.Approve(context.Background(), "root@example.com", r.ID))

		err = s.service.Approve(context.Background(), "root@example.com", r.ID)
		s.True(domerrors.Is(err, domerrors.CodeNotFound))

		// Still approved, never reverted.
		stored, err := s.store.FindByID(context.Background(), r.ID)
		s.Require().NoError(err)
		s.Equal(StatusApproved, stored.Status)
	})

	s.Run("approving an unknown id fails", func() {
		err := s.service.Approve(context.Background(), "root@example.com", uuid.New())
		s.True(domerrors.Is(err, domerrors.CodeNotFound))
	})

	s.Run("approval emits an audit event", func() {
		target := s.seedProfile("audited@example.com", "01744444444")
		r, err := s.service.Create(context.Background(), "asker@example.com", target.BiodataID, "Asker")
		s.Require().NoError(err)

		s.Require().NoError(s.service.Approve(context.Background(), "root@example.com", r.ID))

		events := s.auditor.Events()
		s.Require().Len(events, 1)
		s.Equal(audit.ActionApproveContact, events[0].Action)
		s.Equal(r.ID.String(), events[0].Subject)
	})
}

func (s *ServiceSuite) TestDelete() {
	s.Run("deleting a pending request permits an identical re-request", func() {
		target := s.seedProfile("again@example.com", "01755555555")
		r, err := s.service.Create(context.Background(), "asker@example.com", target.BiodataID, "Asker")
		s.Require().NoError(err)

		s.Require().NoError(s.service.Delete(context.Background(), r.ID, "asker@example.com"))

		_, err = s.service.Create(context.Background(), "asker@example.com", target.BiodataID, "Asker")
		s.Require().NoError(err)
	})

	s.Run("a wrong requester gets the same not_found an absent id does", func() {
		target := s.seedProfile("guarded@example.com", "01766666666")
		r, err := s.service.Create(context.Background(), "owner@example.com", target.BiodataID, "Owner")
		s.Require().NoError(err)

		errWrong := s.service.Delete(context.Background(), r.ID, "intruder@example.com")
		errAbsent := s.service.Delete(context.Background(), uuid.New(), "intruder@example.com")

		s.True(domerrors.Is(errWrong, domerrors.CodeNotFound))
		s.True(domerrors.Is(errAbsent, domerrors.CodeNotFound))
		s.Equal(domerrors.MessageOf(errWrong), domerrors.MessageOf(errAbsent))

		// The request is still there.
		_, err = s.store.FindByID(context.Background(), r.ID)
		s.Require().NoError(err)
	})
}
