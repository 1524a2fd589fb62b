package contact

import (
	"context"

	"github.com/google/uuid"
)

// Store is pure I/O over contact requests. The triple uniqueness invariant
// is enforced by the store at insert time (constraint or lock), never by a
// caller-side existence check.
type Store interface {
	// Create inserts a request, returning sentinel.ErrConflict when the
	// triple already has an outstanding request.
	Create(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	ListByRequester(ctx context.Context, email string) ([]*Request, error)
	// Approve transitions pending -> approved and reports
	// sentinel.ErrNotFound when the request is absent or already approved.
	Approve(ctx context.Context, id uuid.UUID) error
	// Delete removes the request only when requesterEmail matches the
	// stored requester; otherwise sentinel.ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID, requesterEmail string) error
	ListPending(ctx context.Context) ([]*Request, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	// SumApprovedPrice is the revenue total: the sum of price over all
	// approved requests.
	SumApprovedPrice(ctx context.Context) (int64, error)
}
