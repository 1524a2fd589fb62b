package story

import (
	"context"

	"github.com/google/uuid"
)

// Store is pure I/O over success stories.
type Store interface {
	Create(ctx context.Context, st *Story) error
	FindByID(ctx context.Context, id uuid.UUID) (*Story, error)
	FindBySelfBiodataID(ctx context.Context, biodataID int64) (*Story, error)
	// Approve transitions pending -> approved, reporting
	// sentinel.ErrNotFound when the story is absent or already approved.
	Approve(ctx context.Context, id uuid.UUID) error
	// ListApproved returns approved stories, newest first.
	ListApproved(ctx context.Context, limit int) ([]*Story, error)
	ListPending(ctx context.Context) ([]*Story, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
