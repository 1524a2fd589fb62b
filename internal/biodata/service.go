package biodata

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/internal/audit"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/metrics"
	"github.com/ana-yet/soulmate-server-side-code/internal/user"
	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// AccountStore is the slice of the user store the premium flow needs to
// mirror a profile's status onto its owning account.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	SetSubscriptionByEmail(ctx context.Context, email string, sub user.Subscription) error
}

// Service owns profile creation, the public read surface, and the premium
// subscription lifecycle.
type Service struct {
	store    Store
	accounts AccountStore
	audit    audit.Publisher
	metrics  *metrics.Metrics
}

func NewService(store Store, accounts AccountStore, auditor audit.Publisher, m *metrics.Metrics) *Service {
	return &Service{store: store, accounts: accounts, audit: auditor, metrics: m}
}

// Create publishes a member's profile. Each owner gets exactly one; the
// sequential public id is assigned by the store atomically with the insert.
func (s *Service) Create(ctx context.Context, b *Biodata) (int64, error) {
	if b.ContactEmail == "" {
		return 0, domerrors.New(domerrors.CodeValidation, "contactEmail is required")
	}
	if b.Type == "" {
		return 0, domerrors.New(domerrors.CodeValidation, "biodataType is required")
	}
	now := time.Now()
	b.ID = uuid.New()
	b.Status = StatusFree
	b.CreatedAt = now
	b.UpdatedAt = now
	if err := s.store.Create(ctx, b); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return 0, domerrors.New(domerrors.CodeConflict, "biodata already exists")
		}
		return 0, domerrors.Wrap(domerrors.CodeInternal, "create biodata", err)
	}
	return b.BiodataID, nil
}

// Update rewrites the caller's own profile attributes. The public id, owner,
// and premium status never change through this path.
func (s *Service) Update(ctx context.Context, principal string, storageID uuid.UUID, b *Biodata) error {
	existing, err := s.store.FindByStorageID(ctx, storageID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeNotFound, "biodata not found")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "look up biodata", err)
	}
	if existing.ContactEmail != principal {
		return domerrors.New(domerrors.CodeForbidden, "not your biodata")
	}
	b.ID = storageID
	b.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, b); err != nil {
		return domerrors.Wrap(domerrors.CodeInternal, "update biodata", err)
	}
	return nil
}

// Get returns one profile by storage id.
func (s *Service) Get(ctx context.Context, storageID uuid.UUID) (*Biodata, error) {
	b, err := s.store.FindByStorageID(ctx, storageID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domerrors.New(domerrors.CodeNotFound, "biodata not found")
		}
		return nil, domerrors.Wrap(domerrors.CodeInternal, "look up biodata", err)
	}
	return b, nil
}

// GetByOwner returns the caller's own profile, or nil without error when
// none exists yet (the dashboard treats that as "not created").
func (s *Service) GetByOwner(ctx context.Context, email string) (*Biodata, error) {
	b, err := s.store.FindByOwner(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, domerrors.Wrap(domerrors.CodeInternal, "look up biodata", err)
	}
	return b, nil
}

// Similar returns up to four profiles of the same category.
func (s *Service) Similar(ctx context.Context, storageID uuid.UUID) ([]*Biodata, error) {
	current, err := s.store.FindByStorageID(ctx, storageID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domerrors.New(domerrors.CodeNotFound, "biodata not found")
		}
		return nil, domerrors.Wrap(domerrors.CodeInternal, "look up biodata", err)
	}
	similar, err := s.store.ListByType(ctx, current.Type, current.ID, 4)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "list similar biodata", err)
	}
	return similar, nil
}

// Premium returns up to eight premium profiles for the public landing page.
func (s *Service) Premium(ctx context.Context, ageAscending bool) ([]*Biodata, error) {
	items, err := s.store.ListPremium(ctx, ageAscending, 8)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "list premium biodata", err)
	}
	return items, nil
}

// Search serves the public filtered listing.
func (s *Service) Search(ctx context.Context, f SearchFilter) (*SearchResult, error) {
	result, err := s.store.Search(ctx, f)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "search biodata", err)
	}
	return result, nil
}

// RequestPremium moves a profile and its owning account into the pending
// tier. The owner account is resolved before anything is written: when it
// cannot be, the operation fails and neither record is touched. Both writes
// are absolute sets, so a retry after a crash between them converges.
func (s *Service) RequestPremium(ctx context.Context, storageID uuid.UUID) error {
	b, err := s.store.FindByStorageID(ctx, storageID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeNotFound, "biodata not found")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "look up biodata", err)
	}
	if b.ContactEmail == "" {
		return domerrors.New(domerrors.CodeNotFound, "biodata has no owner account")
	}
	if _, err := s.accounts.FindByEmail(ctx, b.ContactEmail); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeNotFound, "biodata has no owner account")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "look up owner account", err)
	}

	if err := s.store.SetStatusByStorageID(ctx, storageID, StatusPending); err != nil {
		return domerrors.Wrap(domerrors.CodeInternal, "set biodata pending", err)
	}
	if err := s.accounts.SetSubscriptionByEmail(ctx, b.ContactEmail, user.SubscriptionPending); err != nil {
		return domerrors.Wrap(domerrors.CodeInternal, "set account pending", err)
	}
	s.metrics.PremiumRequests.Inc()
	return nil
}

// ApprovePremium finishes the pending -> premium transition. Absent or
// non-pending profiles are a no-op failure.
func (s *Service) ApprovePremium(ctx context.Context, actor string, biodataID int64) error {
	if err := s.store.ApprovePremiumByBiodataID(ctx, biodataID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeNotFound, "biodata not found or already premium")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "approve premium", err)
	}
	s.metrics.PremiumApprovals.Inc()
	s.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionApprovePremium,
		Actor:   actor,
		Subject: strconv.FormatInt(biodataID, 10),
	})
	return nil
}

// PendingPremium lists profiles awaiting premium approval, newest first.
func (s *Service) PendingPremium(ctx context.Context) ([]*Biodata, error) {
	items, err := s.store.ListPendingPremium(ctx)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "list pending premium", err)
	}
	return items, nil
}
