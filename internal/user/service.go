package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/internal/audit"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/metrics"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/middleware"
	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// Service owns account records and the authorization gate. Every admin-only
// operation in the system funnels through RequireAdmin here; the decision is
// never cached across calls.
type Service struct {
	store   Store
	audit   audit.Publisher
	metrics *metrics.Metrics
}

var _ middleware.AdminChecker = (*Service)(nil)

func NewService(store Store, auditor audit.Publisher, m *metrics.Metrics) *Service {
	return &Service{store: store, audit: auditor, metrics: m}
}

// Upsert creates the account on first sign-in. Re-registering an existing
// email is idempotent and returns the stored record untouched.
func (s *Service) Upsert(ctx context.Context, email, name, photoURL string) (*User, bool, error) {
	if email == "" {
		return nil, false, domerrors.New(domerrors.CodeValidation, "email is required")
	}
	existing, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, domerrors.Wrap(domerrors.CodeInternal, "look up user", err)
	}

	now := time.Now()
	u := &User{
		ID:               uuid.New(),
		Email:            email,
		Name:             name,
		PhotoURL:         photoURL,
		Role:             RoleMember,
		SubscriptionType: SubscriptionFree,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Lost a sign-in race; the other writer's record is the truth.
			existing, err := s.store.FindByEmail(ctx, email)
			if err != nil {
				return nil, false, domerrors.Wrap(domerrors.CodeInternal, "look up user after conflict", err)
			}
			return existing, false, nil
		}
		return nil, false, domerrors.Wrap(domerrors.CodeInternal, "create user", err)
	}
	s.metrics.UsersCreated.Inc()
	return u, true, nil
}

// Info returns the role and subscription tier for an account.
func (s *Service) Info(ctx context.Context, email string) (Info, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Info{}, domerrors.New(domerrors.CodeNotFound, "user not found")
		}
		return Info{}, domerrors.Wrap(domerrors.CodeInternal, "look up user", err)
	}
	return Info{Role: u.Role, SubscriptionType: u.SubscriptionType}, nil
}

// Profile returns the full account record for its owner.
func (s *Service) Profile(ctx context.Context, email string) (*User, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domerrors.New(domerrors.CodeNotFound, "user not found")
		}
		return nil, domerrors.Wrap(domerrors.CodeInternal, "look up user", err)
	}
	return u, nil
}

// RequireAdmin denies unless the principal exists and holds the admin role.
func (s *Service) RequireAdmin(ctx context.Context, email string) error {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeForbidden, "admins only")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "look up requester", err)
	}
	if u.Role != RoleAdmin {
		return domerrors.New(domerrors.CodeForbidden, "admins only")
	}
	return nil
}

// List returns accounts filtered by a case-insensitive name search.
func (s *Service) List(ctx context.Context, search string) ([]*User, error) {
	users, err := s.store.List(ctx, search)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "list users", err)
	}
	return users, nil
}

// Promote raises a member to admin. Promoting an absent user or an existing
// admin is a no-op failure, surfaced as NotFound.
func (s *Service) Promote(ctx context.Context, actor string, id uuid.UUID) error {
	if err := s.store.SetRole(ctx, id, RoleAdmin); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeNotFound, "user not found or already admin")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "promote user", err)
	}
	s.audit.Emit(ctx, audit.Event{Action: audit.ActionPromoteAdmin, Actor: actor, Subject: id.String()})
	return nil
}

// GrantPremium raises an account's subscription tier to premium.
func (s *Service) GrantPremium(ctx context.Context, actor string, id uuid.UUID) error {
	if err := s.store.SetSubscription(ctx, id, SubscriptionPremium); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeNotFound, "user not found or already premium")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "grant premium", err)
	}
	s.audit.Emit(ctx, audit.Event{Action: audit.ActionGrantPremium, Actor: actor, Subject: id.String()})
	return nil
}
