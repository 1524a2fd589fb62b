package contact

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/internal/audit"
	"github.com/ana-yet/soulmate-server-side-code/internal/biodata"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/metrics"
	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// ProfileFinder is the slice of the biodata store the disclosure join needs.
type ProfileFinder interface {
	FindByBiodataID(ctx context.Context, biodataID int64) (*biodata.Biodata, error)
}

// Service is the contact disclosure engine: the state machine for requests
// and the gated projection of private contact fields.
type Service struct {
	store    Store
	profiles ProfileFinder
	audit    audit.Publisher
	metrics  *metrics.Metrics
	price    int64
}

func NewService(store Store, profiles ProfileFinder, auditor audit.Publisher, m *metrics.Metrics, price int64) *Service {
	return &Service{store: store, profiles: profiles, audit: auditor, metrics: m, price: price}
}

// Create opens a pending disclosure request at the fixed fee. An identical
// outstanding request is a Conflict.
func (s *Service) Create(ctx context.Context, requesterEmail string, requestedBiodataID int64, requesterName string) (*Request, error) {
	if requesterEmail == "" || requestedBiodataID == 0 || requesterName == "" {
		return nil, domerrors.New(domerrors.CodeValidation, "missing required fields")
	}
	r := &Request{
		ID:                 uuid.New(),
		RequesterEmail:     requesterEmail,
		RequestedBiodataID: requestedBiodataID,
		RequesterName:      requesterName,
		Status:             StatusPending,
		Price:              s.price,
		RequestedAt:        time.Now(),
	}
	if err := s.store.Create(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, domerrors.New(domerrors.CodeConflict, "you have already requested this biodata")
		}
		return nil, domerrors.Wrap(domerrors.CodeInternal, "create contact request", err)
	}
	s.metrics.ContactRequestsCreated.Inc()
	return r, nil
}

// Approve transitions a pending request to approved. Approval is monotone:
// an absent or already-approved request is a no-op failure, never a
// reversal.
func (s *Service) Approve(ctx context.Context, actor string, id uuid.UUID) error {
	if err := s.store.Approve(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeNotFound, "contact request not found or already approved")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "approve contact request", err)
	}
	s.metrics.ContactRequestsApproved.Inc()
	s.audit.Emit(ctx, audit.Event{Action: audit.ActionApproveContact, Actor: actor, Subject: id.String()})
	return nil
}

// ListForRequester joins each of the requester's requests with its target
// profile and returns the disclosure-gated views. Requests whose target
// profile has vanished are omitted.
func (s *Service) ListForRequester(ctx context.Context, email string) ([]DisclosureView, error) {
	requests, err := s.store.ListByRequester(ctx, email)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "list contact requests", err)
	}
	views := make([]DisclosureView, 0, len(requests))
	for _, r := range requests {
		target, err := s.profiles.FindByBiodataID(ctx, r.RequestedBiodataID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return nil, domerrors.Wrap(domerrors.CodeInternal, "resolve requested biodata", err)
		}
		views = append(views, Reveal(r, target))
	}
	return views, nil
}

// Delete removes the requester's own request. A wrong requester gets the
// same NotFound an absent id does, so the response never confirms whether
// the id exists.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, requesterEmail string) error {
	if err := s.store.Delete(ctx, id, requesterEmail); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeNotFound, "request not found")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "delete contact request", err)
	}
	return nil
}

// ListPending is the admin approval queue, newest first.
func (s *Service) ListPending(ctx context.Context) ([]*Request, error) {
	requests, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "list pending contact requests", err)
	}
	return requests, nil
}
