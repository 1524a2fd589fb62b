package biodata

import (
	"context"

	"github.com/google/uuid"
)

// Store is pure I/O over biodata records. Create owns identifier
// allocation: the public sequential id is assigned atomically with the
// insert so concurrent creations can never collide, and the one-profile-
// per-owner rule is enforced by the store, not by a caller-side existence
// check.
type Store interface {
	// Create assigns b.BiodataID (max existing + 1, starting at 1) and
	// persists the record. Returns sentinel.ErrConflict when the owner
	// already has a profile.
	Create(ctx context.Context, b *Biodata) error
	FindByStorageID(ctx context.Context, id uuid.UUID) (*Biodata, error)
	FindByBiodataID(ctx context.Context, biodataID int64) (*Biodata, error)
	FindByOwner(ctx context.Context, contactEmail string) (*Biodata, error)
	// Update rewrites the mutable profile attributes. BiodataID, owner and
	// status are never touched by it.
	Update(ctx context.Context, b *Biodata) error
	// ListByType returns up to limit profiles of the given type, excluding
	// the one identified by exclude.
	ListByType(ctx context.Context, t Type, exclude uuid.UUID, limit int) ([]*Biodata, error)
	// ListPremium returns premium profiles ordered by age.
	ListPremium(ctx context.Context, ageAscending bool, limit int) ([]*Biodata, error)
	// ListByBiodataIDs resolves a set of public ids to records.
	ListByBiodataIDs(ctx context.Context, ids []int64) ([]*Biodata, error)
	Search(ctx context.Context, f SearchFilter) (*SearchResult, error)
	ListPendingPremium(ctx context.Context) ([]*Biodata, error)
	// SetStatusByStorageID is an absolute write: repeating it with the same
	// status succeeds, so the premium request flow stays retry-safe.
	SetStatusByStorageID(ctx context.Context, id uuid.UUID, status Status) error
	// ApprovePremiumByBiodataID transitions pending -> premium, reporting
	// sentinel.ErrNotFound when the profile is absent or not pending.
	ApprovePremiumByBiodataID(ctx context.Context, biodataID int64) error
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context, t Type) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	CountByTypeAndStatus(ctx context.Context, t Type, status Status) (int64, error)
}
