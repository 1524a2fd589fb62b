package favourite

import "context"

// Store is pure I/O over favourites. Pair uniqueness is enforced by the
// store at insert time.
type Store interface {
	// Add inserts a favourite, returning sentinel.ErrConflict when the pair
	// already exists.
	Add(ctx context.Context, f *Favourite) error
	// Remove deletes the pair, returning sentinel.ErrNotFound when absent.
	Remove(ctx context.Context, userEmail string, biodataID int64) error
	Exists(ctx context.Context, userEmail string, biodataID int64) (bool, error)
	ListByUser(ctx context.Context, userEmail string) ([]*Favourite, error)
	CountByUser(ctx context.Context, userEmail string) (int64, error)
}
