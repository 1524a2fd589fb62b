package favourite

import (
	"context"
	"errors"
	"time"

	"github.com/ana-yet/soulmate-server-side-code/internal/biodata"
	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

// ProfileResolver is the slice of the biodata store needed to expand
// favourites into profile records.
type ProfileResolver interface {
	ListByBiodataIDs(ctx context.Context, ids []int64) ([]*biodata.Biodata, error)
}

// Service owns the favourites workflow.
type Service struct {
	store    Store
	profiles ProfileResolver
}

func NewService(store Store, profiles ProfileResolver) *Service {
	return &Service{store: store, profiles: profiles}
}

// Add bookmarks a profile. Re-adding the same pair is a Conflict.
func (s *Service) Add(ctx context.Context, userEmail string, biodataID int64) error {
	if userEmail == "" || biodataID == 0 {
		return domerrors.New(domerrors.CodeValidation, "userEmail and biodataId are required")
	}
	f := &Favourite{UserEmail: userEmail, BiodataID: biodataID, FavouritedAt: time.Now()}
	if err := s.store.Add(ctx, f); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return domerrors.New(domerrors.CodeConflict, "already added to favourites")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "add favourite", err)
	}
	return nil
}

// Remove deletes the caller's bookmark.
func (s *Service) Remove(ctx context.Context, userEmail string, biodataID int64) error {
	if err := s.store.Remove(ctx, userEmail, biodataID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domerrors.New(domerrors.CodeNotFound, "favourite not found")
		}
		return domerrors.Wrap(domerrors.CodeInternal, "remove favourite", err)
	}
	return nil
}

// Check reports whether the pair is bookmarked.
func (s *Service) Check(ctx context.Context, userEmail string, biodataID int64) (bool, error) {
	exists, err := s.store.Exists(ctx, userEmail, biodataID)
	if err != nil {
		return false, domerrors.Wrap(domerrors.CodeInternal, "check favourite", err)
	}
	return exists, nil
}

// List expands the user's bookmarks into their profile records.
func (s *Service) List(ctx context.Context, userEmail string) ([]*biodata.Biodata, error) {
	favs, err := s.store.ListByUser(ctx, userEmail)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "list favourites", err)
	}
	ids := make([]int64, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.BiodataID)
	}
	profiles, err := s.profiles.ListByBiodataIDs(ctx, ids)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "resolve favourite biodata", err)
	}
	return profiles, nil
}
