package story

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/internal/audit"
	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// Service owns the success-story review workflow.
type Service struct {
	store Store
	audit audit.Publisher
}

func NewService(store Store, auditor audit.Publisher) *Service {
	return &Service{store: store, audit: auditor}
}

// Submit files a story for admin review.
func (s *Service) Submit(ctx context.Context, st *Story) (uuid.UUID, error) {
	if st.SelfBiodataID == 0 || st.PartnerBiodataID == 0 || st.StoryText == "" {
		return uuid.Nil, domerrors.New(domerrors.CodeValidation, "all fields are required")
	}
	st.ID = uuid.New()
	st.Status = StatusPending
	st.CreatedAt = time.Now()
	if err := s.store.Create(ctx, st); err != nil {
		return uuid.Nil, domerrors.Wrap(domerrors.CodeInternal, "submit success story", err)
	}
	return st.ID, nil
}

// Get returns one story by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Story, error) {
	st, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domerrors.New(domerrors.CodeNotFound, "story not found")
		}
		return nil, domerrors.Wrap(domerrors.CodeInternal, "find story", err)
	}
	return st, nil
}

// GetBySelfBiodataID returns the story submitted for a profile, or nil
// without error when none exists.
func (s *Service) GetBySelfBiodataID(ctx context.Context, biodataID int64) (*Story, error) {
	st, err := s.store.FindBySelfBiodataID(ctx, biodataID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, domerrors.Wrap(domerrors.CodeInternal, "find story by biodata", err)
	}
	return st, nil
}

// Approve publishes a pending story. Absent or already-approved stories are
// a no-op failure.
func (s *Service) Approve(ctx context.Context, actor string, id uuid.UUID) error {
	if err := s.store.Approve(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeNotFound, "success story not found or already approved")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "approve success story", err)
	}
	s.audit.Emit(ctx, audit.Event{Action: audit.ActionApproveStory, Actor: actor, Subject: id.String()})
	return nil
}

// ListApproved serves the public landing page, newest first.
func (s *Service) ListApproved(ctx context.Context, limit int) ([]*Story, error) {
	stories, err := s.store.ListApproved(ctx, limit)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "list approved stories", err)
	}
	return stories, nil
}

// ListPending is the admin review queue.
func (s *Service) ListPending(ctx context.Context) ([]*Story, error) {
	stories, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "list pending stories", err)
	}
	return stories, nil
}
