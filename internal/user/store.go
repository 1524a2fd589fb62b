package user

import (
	"context"

	"github.com/google/uuid"
)

// Store is pure I/O over user records. Uniqueness of email is enforced by
// the store itself (constraint or lock), never by a caller-side existence
// check.
type Store interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// List returns users whose name contains search, case-insensitively.
	// Empty search returns everyone.
	List(ctx context.Context, search string) ([]*User, error)
	// SetRole updates the role and reports sentinel.ErrNotFound when the
	// user is absent or already holds the role (a no-op failure).
	SetRole(ctx context.Context, id uuid.UUID, role Role) error
	// SetSubscription behaves like SetRole for the subscription tier.
	SetSubscription(ctx context.Context, id uuid.UUID, sub Subscription) error
	// SetSubscriptionByEmail is an absolute, idempotent write used by the
	// premium request flow; repeating it with the same value succeeds.
	SetSubscriptionByEmail(ctx context.Context, email string, sub Subscription) error
	Count(ctx context.Context) (int64, error)
	CountBySubscription(ctx context.Context, sub Subscription) (int64, error)
}
