package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/ana-yet/soulmate-server-side-code/internal/audit"
	"github.com/ana-yet/soulmate-server-side-code/internal/biodata"
	"github.com/ana-yet/soulmate-server-side-code/internal/contact"
	"github.com/ana-yet/soulmate-server-side-code/internal/dashboard"
	"github.com/ana-yet/soulmate-server-side-code/internal/favourite"
	"github.com/ana-yet/soulmate-server-side-code/internal/identity"
	"github.com/ana-yet/soulmate-server-side-code/internal/payment"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/logger"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/metrics"
	"github.com/ana-yet/soulmate-server-side-code/internal/story"
	"github.com/ana-yet/soulmate-server-side-code/internal/user"
)

type emailVerifier struct {
	verifier *identity.JWTVerifier
}

func (v emailVerifier) Verify(ctx context.Context, token string) (string, error) {
	p, err := v.verifier.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	return p.Email, nil
}

// RouterSuite drives the full HTTP surface against in-memory stores.
type RouterSuite struct {
	suite.Suite
	server      *httptest.Server
	verifier    *identity.JWTVerifier
	userStore   *user.InMemoryStore
	userService *user.Service
}

func (s *RouterSuite) SetupTest() {
	log := logger.New()
	m := metrics.NewWith(prometheus.NewRegistry())
	auditor := audit.NewMemoryPublisher()

	s.userStore = user.NewInMemoryStore()
	biodataStore := biodata.NewInMemoryStore()
	contactStore := contact.NewInMemoryStore()
	favouriteStore := favourite.NewInMemoryStore()
	storyStore := story.NewInMemoryStore()

	s.userService = user.NewService(s.userStore, auditor, m)
	biodataService := biodata.NewService(biodataStore, s.userStore, auditor, m)
	contactService := contact.NewService(contactStore, biodataStore, auditor, m, 5)
	favouriteService := favourite.NewService(favouriteStore, biodataStore)
	storyService := story.NewService(storyStore, auditor)
	dashboardService := dashboard.NewService(s.userStore, biodataStore, contactStore, favouriteStore, storyStore, nil)

	s.verifier = identity.NewJWTVerifier("router-test-key", "soulmate", "soulmate-api")

	router := NewRouter(
		Handlers{
			Users:      NewUserHandler(s.userService, log),
			Biodata:    NewBiodataHandler(biodataService, log),
			Contacts:   NewContactHandler(contactService, log),
			Favourites: NewFavouriteHandler(favouriteService, log),
			Stories:    NewStoryHandler(storyService, log),
			Dashboard:  NewDashboardHandler(dashboardService, log),
			Payments:   NewPaymentHandler(payment.MockIntentCreator{Currency: "usd"}, log),
		},
		emailVerifier{verifier: s.verifier},
		s.userService,
		log,
		m,
	)
	s.server = httptest.NewServer(router)
}

func (s *RouterSuite) TearDownTest() {
	s.server.Close()
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) token(email string) string {
	token, err := s.verifier.IssueToken(identity.Principal{Email: email, Name: "Test"}, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *RouterSuite) registerMember(email string) {
	_, _, err := s.userService.Upsert(context.Background(), email, "Member", "")
	s.Require().NoError(err)
}

func (s *RouterSuite) registerAdmin(email string) {
	u, _, err := s.userService.Upsert(context.Background(), email, "Admin", "")
	s.Require().NoError(err)
	s.Require().NoError(s.userStore.SetRole(context.Background(), u.ID, user.RoleAdmin))
}

func (s *RouterSuite) do(method, path, token string, body any) (*http.Response, map[string]any) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var decoded map[string]any
	if len(raw) > 0 && json.Valid(raw) {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func (s *RouterSuite) TestPublicSurface() {
	s.Run("health and metrics respond without auth", func() {
		resp, _ := s.do(http.MethodGet, "/healthz", "", nil)
		s.Equal(http.StatusOK, resp.StatusCode)

		resp, _ = s.do(http.MethodGet, "/metrics", "", nil)
		s.Equal(http.StatusOK, resp.StatusCode)
	})

	s.Run("registration creates and then replays the account", func() {
		resp, body := s.do(http.MethodPost, "/users", "", map[string]string{
			"email": "signup@example.com", "name": "Sign Up",
		})
		s.Equal(http.StatusCreated, resp.StatusCode)
		s.Equal("member", body["role"])

		resp, _ = s.do(http.MethodPost, "/users", "", map[string]string{
			"email": "signup@example.com", "name": "Changed",
		})
		s.Equal(http.StatusOK, resp.StatusCode)
	})

	s.Run("public listing works without auth", func() {
		resp, _ := s.do(http.MethodGet, "/biodatas?page=1&limit=5", "", nil)
		s.Equal(http.StatusOK, resp.StatusCode)
	})
}

func (s *RouterSuite) TestAuthGating() {
	s.Run("member routes reject missing tokens", func() {
		resp, body := s.do(http.MethodGet, "/my-contact-requests", "", nil)
		s.Equal(http.StatusUnauthorized, resp.StatusCode)
		s.Equal("unauthorized", body["error"])
	})

	s.Run("member routes reject forged tokens", func() {
		forger := identity.NewJWTVerifier("wrong-key", "soulmate", "soulmate-api")
		forged, err := forger.IssueToken(identity.Principal{Email: "evil@example.com"}, time.Hour)
		s.Require().NoError(err)

		resp, _ := s.do(http.MethodGet, "/my-contact-requests", forged, nil)
		s.Equal(http.StatusUnauthorized, resp.StatusCode)
	})

	s.Run("admin routes reject plain members without mutating", func() {
		s.registerMember("plain@example.com")
		victim, _, err := s.userService.Upsert(context.Background(), "victim@example.com", "Victim", "")
		s.Require().NoError(err)

		resp, body := s.do(http.MethodPatch, "/users/admin/"+victim.ID.String(), s.token("plain@example.com"), nil)
		s.Equal(http.StatusForbidden, resp.StatusCode)
		s.Equal("forbidden", body["error"])

		unchanged, err := s.userStore.FindByID(context.Background(), victim.ID)
		s.Require().NoError(err)
		s.Equal(user.RoleMember, unchanged.Role)
	})
}

func (s *RouterSuite) TestProfileLifecycle() {
	s.Run("create, read, and update an own profile", func() {
		s.registerMember("owner@example.com")
		token := s.token("owner@example.com")

		resp, body := s.do(http.MethodPost, "/biodata", token, map[string]any{
			"biodataType": "Male", "name": "Owner", "age": 29,
		})
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		s.EqualValues(1, body["biodataId"])

		resp, body = s.do(http.MethodGet, "/biodata", token, nil)
		s.Equal(http.StatusOK, resp.StatusCode)
		s.Equal("owner@example.com", body["contactEmail"])

		storageID := body["_id"].(string)
		resp, _ = s.do(http.MethodPatch, "/biodata/"+storageID, token, map[string]any{
			"biodataType": "Male", "name": "Renamed", "age": 30,
		})
		s.Equal(http.StatusOK, resp.StatusCode)
	})

	s.Run("another member cannot update it", func() {
		s.registerMember("first@example.com")
		s.registerMember("second@example.com")

		_, body := s.do(http.MethodPost, "/biodata", s.token("first@example.com"), map[string]any{
			"biodataType": "Female", "name": "First", "age": 24,
		})
		s.Require().NotNil(body["biodataId"])

		resp, own := s.do(http.MethodGet, "/biodata", s.token("first@example.com"), nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		storageID := own["_id"].(string)

		resp, _ = s.do(http.MethodPatch, "/biodata/"+storageID, s.token("second@example.com"), map[string]any{
			"biodataType": "Female", "name": "Hijacked",
		})
		s.Equal(http.StatusForbidden, resp.StatusCode)
	})
}

func (s *RouterSuite) TestContactWorkflow() {
	s.Run("request, approve, and see disclosed contact fields", func() {
		s.registerMember("target@example.com")
		s.registerMember("asker@example.com")
		s.registerAdmin("root@example.com")

		_, created := s.do(http.MethodPost, "/biodata", s.token("target@example.com"), map[string]any{
			"biodataType": "Female", "name": "Target", "age": 26, "mobileNumber": "01712345678",
		})
		biodataID := int64(created["biodataId"].(float64))

		resp, reqBody := s.do(http.MethodPost, "/biodata-requests", s.token("asker@example.com"), map[string]any{
			"biodataId": biodataID, "name": "Asker",
		})
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		requestID := reqBody["_id"].(string)

		// Duplicate triple is a conflict.
		resp, _ = s.do(http.MethodPost, "/biodata-requests", s.token("asker@example.com"), map[string]any{
			"biodataId": biodataID, "name": "Asker",
		})
		s.Equal(http.StatusConflict, resp.StatusCode)

		// Pending: no contact fields.
		req, err := http.NewRequest(http.MethodGet, s.server.URL+"/my-contact-requests", nil)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+s.token("asker@example.com"))
		rawResp, err := s.server.Client().Do(req)
		s.Require().NoError(err)
		var views []map[string]any
		s.Require().NoError(json.NewDecoder(rawResp.Body).Decode(&views))
		rawResp.Body.Close()
		s.Require().Len(views, 1)
		s.Nil(views[0]["mobile"])
		s.Nil(views[0]["email"])

		// Approve as admin, then the fields appear.
		resp, _ = s.do(http.MethodPatch, "/approve-contact/"+requestID, s.token("root@example.com"), nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		req, err = http.NewRequest(http.MethodGet, s.server.URL+"/my-contact-requests", nil)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+s.token("asker@example.com"))
		rawResp, err = s.server.Client().Do(req)
		s.Require().NoError(err)
		views = nil
		s.Require().NoError(json.NewDecoder(rawResp.Body).Decode(&views))
		rawResp.Body.Close()
		s.Require().Len(views, 1)
		s.Equal("01712345678", views[0]["mobile"])
		s.Equal("target@example.com", views[0]["email"])
	})
}

func (s *RouterSuite) TestPaymentIntent() {
	s.Run("returns a client secret for a positive price", func() {
		s.registerMember("payer@example.com")
		resp, body := s.do(http.MethodPost, "/create-payment-intent", s.token("payer@example.com"), map[string]any{
			"price": 5,
		})
		s.Equal(http.StatusOK, resp.StatusCode)
		s.NotEmpty(body["clientSecret"])
	})

	s.Run("rejects a non-positive price", func() {
		s.registerMember("cheap@example.com")
		resp, _ := s.do(http.MethodPost, "/create-payment-intent", s.token("cheap@example.com"), map[string]any{
			"price": 0,
		})
		s.Equal(http.StatusBadRequest, resp.StatusCode)
	})
}
