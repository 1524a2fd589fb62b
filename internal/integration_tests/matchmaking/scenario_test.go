package matchmaking

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/ana-yet/soulmate-server-side-code/internal/audit"
	"github.com/ana-yet/soulmate-server-side-code/internal/biodata"
	"github.com/ana-yet/soulmate-server-side-code/internal/contact"
	"github.com/ana-yet/soulmate-server-side-code/internal/dashboard"
	"github.com/ana-yet/soulmate-server-side-code/internal/favourite"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/metrics"
	"github.com/ana-yet/soulmate-server-side-code/internal/story"
	"github.com/ana-yet/soulmate-server-side-code/internal/user"
	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
)

// ScenarioSuite walks the whole matchmaking lifecycle across services the
// way a real deployment would: sign-up, profile publication, premium
// upgrade, mediated disclosure, favourites, a success story, and the
// resulting dashboards.
type ScenarioSuite struct {
	suite.Suite

	users      *user.Service
	profiles   *biodata.Service
	contacts   *contact.Service
	favourites *favourite.Service
	stories    *story.Service
	dashboards *dashboard.Service

	userStore    *user.InMemoryStore
	profileStore *biodata.InMemoryStore
	auditor      *audit.MemoryPublisher
}

func (s *ScenarioSuite) SetupTest() {
	m := metrics.NewWith(prometheus.NewRegistry())
	s.userStore = user.NewInMemoryStore()
	s.profileStore = biodata.NewInMemoryStore()
	contactStore := contact.NewInMemoryStore()
	favouriteStore := favourite.NewInMemoryStore()
	storyStore := story.NewInMemoryStore()
	s.auditor = audit.NewMemoryPublisher()

	s.users = user.NewService(s.userStore, s.auditor, m)
	s.profiles = biodata.NewService(s.profileStore, s.userStore, s.auditor, m)
	s.contacts = contact.NewService(contactStore, s.profileStore, s.auditor, m, 5)
	s.favourites = favourite.NewService(favouriteStore, s.profileStore)
	s.stories = story.NewService(storyStore, s.auditor)
	s.dashboards = dashboard.NewService(s.userStore, s.profileStore, contactStore, favouriteStore, storyStore, nil)
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

func (s *ScenarioSuite) TestFullLifecycle() {
	ctx := context.Background()

	// Two members and an admin sign up.
	groom, _, err := s.users.Upsert(ctx, "groom@example.com", "Groom", "")
	s.Require().NoError(err)
	_, _, err = s.users.Upsert(ctx, "bride@example.com", "Bride", "")
	s.Require().NoError(err)
	admin, _, err := s.users.Upsert(ctx, "admin@example.com", "Admin", "")
	s.Require().NoError(err)
	s.Require().NoError(s.userStore.SetRole(ctx, admin.ID, user.RoleAdmin))

	// Only the admin passes the gate.
	s.Require().NoError(s.users.RequireAdmin(ctx, "admin@example.com"))
	err = s.users.RequireAdmin(ctx, "groom@example.com")
	s.Require().True(domerrors.Is(err, domerrors.CodeForbidden))

	// Both publish profiles; public ids come out sequential.
	groomProfile := &biodata.Biodata{ContactEmail: "groom@example.com", Type: biodata.TypeMale, Name: "Groom", Age: 30, MobileNumber: "01810000000"}
	groomID, err := s.profiles.Create(ctx, groomProfile)
	s.Require().NoError(err)
	s.EqualValues(1, groomID)

	brideProfile := &biodata.Biodata{ContactEmail: "bride@example.com", Type: biodata.TypeFemale, Name: "Bride", Age: 27, MobileNumber: "01820000000"}
	brideID, err := s.profiles.Create(ctx, brideProfile)
	s.Require().NoError(err)
	s.EqualValues(2, brideID)

	// The groom asks for premium; the admin approves.
	s.Require().NoError(s.profiles.RequestPremium(ctx, groomProfile.ID))
	account, err := s.userStore.FindByID(ctx, groom.ID)
	s.Require().NoError(err)
	s.Equal(user.SubscriptionPending, account.SubscriptionType)

	s.Require().NoError(s.profiles.ApprovePremium(ctx, "admin@example.com", groomID))
	upgraded, err := s.profiles.Get(ctx, groomProfile.ID)
	s.Require().NoError(err)
	s.Equal(biodata.StatusPremium, upgraded.Status)

	// The groom bookmarks the bride and requests her contact details.
	s.Require().NoError(s.favourites.Add(ctx, "groom@example.com", brideID))

	request, err := s.contacts.Create(ctx, "groom@example.com", brideID, "Groom")
	s.Require().NoError(err)

	views, err := s.contacts.ListForRequester(ctx, "groom@example.com")
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Nil(views[0].Mobile, "nothing may be disclosed before approval")
	s.Nil(views[0].Email)

	s.Require().NoError(s.contacts.Approve(ctx, "admin@example.com", request.ID))

	views, err = s.contacts.ListForRequester(ctx, "groom@example.com")
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Require().NotNil(views[0].Mobile)
	s.Equal("01820000000", *views[0].Mobile)
	s.Equal("bride@example.com", *views[0].Email)

	// It worked out; they file a success story and the admin publishes it.
	st := &story.Story{SelfBiodataID: groomID, PartnerBiodataID: brideID, StoryText: "Met here, married within a year."}
	storyID, err := s.stories.Submit(ctx, st)
	s.Require().NoError(err)
	s.Require().NoError(s.stories.Approve(ctx, "admin@example.com", storyID))

	public, err := s.stories.ListApproved(ctx, 4)
	s.Require().NoError(err)
	s.Require().Len(public, 1)

	// Dashboards reflect everything above.
	stats, err := s.dashboards.AdminStats(ctx)
	s.Require().NoError(err)
	s.EqualValues(3, stats.TotalUsers)
	s.EqualValues(2, stats.TotalBiodata)
	s.EqualValues(1, stats.PremiumBiodata)
	s.EqualValues(1, stats.ApprovedContactRequests)
	s.EqualValues(5, stats.TotalRevenue)
	s.EqualValues(1, stats.ApprovedSuccessStories)

	summary, err := s.dashboards.UserSummary(ctx, "groom@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(summary.Biodata)
	s.True(summary.IsPremium)
	s.EqualValues(1, summary.FavouritesCount)
	s.EqualValues(1, summary.ContactStats.Approved)
	s.NotNil(summary.SuccessStory)

	counters, err := s.dashboards.PublicCounters(ctx)
	s.Require().NoError(err)
	s.EqualValues(2, counters.TotalBiodata)
	s.EqualValues(1, counters.TotalMarriages)

	// Every admin decision left an audit event.
	actions := make(map[audit.Action]int)
	for _, e := range s.auditor.Events() {
		actions[e.Action]++
	}
	s.Equal(1, actions[audit.ActionApprovePremium])
	s.Equal(1, actions[audit.ActionApproveContact])
	s.Equal(1, actions[audit.ActionApproveStory])
}
