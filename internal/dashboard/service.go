package dashboard

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ana-yet/soulmate-server-side-code/internal/biodata"
	"github.com/ana-yet/soulmate-server-side-code/internal/contact"
	"github.com/ana-yet/soulmate-server-side-code/internal/favourite"
	"github.com/ana-yet/soulmate-server-side-code/internal/story"
	"github.com/ana-yet/soulmate-server-side-code/internal/user"
	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
	"github.com/ana-yet/soulmate-server-side-code/pkg/sentinel"
)

func isNotFound(err error) bool { return errors.Is(err, sentinel.ErrNotFound) }

// CounterCache caches the public counters between recomputations. A nil
// cache disables caching.
type CounterCache interface {
	Get(ctx context.Context) (*PublicCounters, bool)
	Set(ctx context.Context, counters *PublicCounters)
}

// Service is the read-side aggregator. It owns no state transitions; every
// figure is recomputed from the stores on demand.
type Service struct {
	users      user.Store
	biodata    biodata.Store
	contacts   contact.Store
	favourites favourite.Store
	stories    story.Store
	cache      CounterCache
}

func NewService(users user.Store, profiles biodata.Store, contacts contact.Store, favourites favourite.Store, stories story.Store, cache CounterCache) *Service {
	return &Service{
		users:      users,
		biodata:    profiles,
		contacts:   contacts,
		favourites: favourites,
		stories:    stories,
		cache:      cache,
	}
}

// AdminStats computes the full admin rollup. The counts fan out
// concurrently; each is an independent snapshot.
func (s *Service) AdminStats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats
	g, ctx := errgroup.WithContext(ctx)

	collect := func(dst *int64, fetch func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fetch(ctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	collect(&stats.TotalUsers, s.users.Count)
	collect(&stats.PremiumUsers, func(ctx context.Context) (int64, error) {
		return s.users.CountBySubscription(ctx, user.SubscriptionPremium)
	})
	collect(&stats.TotalBiodata, s.biodata.Count)
	collect(&stats.MaleBiodata, func(ctx context.Context) (int64, error) {
		return s.biodata.CountByType(ctx, biodata.TypeMale)
	})
	collect(&stats.FemaleBiodata, func(ctx context.Context) (int64, error) {
		return s.biodata.CountByType(ctx, biodata.TypeFemale)
	})
	collect(&stats.PremiumBiodata, func(ctx context.Context) (int64, error) {
		return s.biodata.CountByStatus(ctx, biodata.StatusPremium)
	})
	collect(&stats.MalePremiumBiodata, func(ctx context.Context) (int64, error) {
		return s.biodata.CountByTypeAndStatus(ctx, biodata.TypeMale, biodata.StatusPremium)
	})
	collect(&stats.FemalePremiumBiodata, func(ctx context.Context) (int64, error) {
		return s.biodata.CountByTypeAndStatus(ctx, biodata.TypeFemale, biodata.StatusPremium)
	})
	collect(&stats.TotalSuccessStories, s.stories.Count)
	collect(&stats.ApprovedSuccessStories, func(ctx context.Context) (int64, error) {
		return s.stories.CountByStatus(ctx, story.StatusApproved)
	})
	collect(&stats.PendingSuccessStories, func(ctx context.Context) (int64, error) {
		return s.stories.CountByStatus(ctx, story.StatusPending)
	})
	collect(&stats.TotalContactRequests, s.contacts.Count)
	collect(&stats.ApprovedContactRequests, func(ctx context.Context) (int64, error) {
		return s.contacts.CountByStatus(ctx, contact.StatusApproved)
	})
	collect(&stats.PendingContactRequests, func(ctx context.Context) (int64, error) {
		return s.contacts.CountByStatus(ctx, contact.StatusPending)
	})
	collect(&stats.TotalRevenue, s.contacts.SumApprovedPrice)

	if err := g.Wait(); err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "compute admin stats", err)
	}
	return &stats, nil
}

// UserSummary computes the member dashboard rollup for one account.
func (s *Service) UserSummary(ctx context.Context, email string) (*UserSummary, error) {
	summary := &UserSummary{}

	own, err := s.biodata.FindByOwner(ctx, email)
	if err == nil {
		summary.Biodata = &BiodataSummary{
			BiodataID:   own.BiodataID,
			Status:      string(own.Status),
			IsCompleted: own.Name != "" && own.Age > 0,
		}
		summary.IsPremium = own.Status == biodata.StatusPremium
	} else if !isNotFound(err) {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "look up own biodata", err)
	}

	favCount, err := s.favourites.CountByUser(ctx, email)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "count favourites", err)
	}
	summary.FavouritesCount = favCount

	requests, err := s.contacts.ListByRequester(ctx, email)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "list contact requests", err)
	}
	summary.ContactStats.Total = int64(len(requests))
	for _, r := range requests {
		switch r.Status {
		case contact.StatusApproved:
			summary.ContactStats.Approved++
		case contact.StatusPending:
			summary.ContactStats.Pending++
		}
	}

	if summary.Biodata != nil {
		st, err := s.stories.FindBySelfBiodataID(ctx, summary.Biodata.BiodataID)
		if err == nil {
			summary.SuccessStory = st
		} else if !isNotFound(err) {
			return nil, domerrors.Wrap(domerrors.CodeInternal, "look up success story", err)
		}
	}

	return summary, nil
}

// PublicCounters serves the landing-page counters, consulting the cache
// first when one is configured.
func (s *Service) PublicCounters(ctx context.Context) (*PublicCounters, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	counters := &PublicCounters{LastUpdated: time.Now()}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.biodata.Count(ctx)
		counters.TotalBiodata = n
		return err
	})
	g.Go(func() error {
		n, err := s.biodata.CountByType(ctx, biodata.TypeMale)
		counters.MaleBiodata = n
		return err
	})
	g.Go(func() error {
		n, err := s.biodata.CountByType(ctx, biodata.TypeFemale)
		counters.FemaleBiodata = n
		return err
	})
	g.Go(func() error {
		n, err := s.stories.CountByStatus(ctx, story.StatusApproved)
		counters.TotalMarriages = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domerrors.Wrap(domerrors.CodeInternal, "compute public counters", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, counters)
	}
	return counters, nil
}
