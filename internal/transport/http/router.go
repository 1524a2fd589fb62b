package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ana-yet/soulmate-server-side-code/internal/platform/metrics"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/middleware"
)

// Handlers collects the per-domain handlers the router composes.
type Handlers struct {
	Users      *UserHandler
	Biodata    *BiodataHandler
	Contacts   *ContactHandler
	Favourites *FavouriteHandler
	Stories    *StoryHandler
	Dashboard  *DashboardHandler
	Payments   *PaymentHandler
}

// NewRouter wires the full HTTP surface: an open public group, a
// bearer-authenticated member group, and an admin group behind the single
// authorization gate.
func NewRouter(
	h Handlers,
	verifier middleware.TokenVerifier,
	adminChecker middleware.AdminChecker,
	logger *slog.Logger,
	m *metrics.Metrics,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("soulmate server is running"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Users.RegisterPublic(r)
	h.Biodata.RegisterPublic(r)
	h.Stories.RegisterPublic(r)
	h.Dashboard.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier, logger))

		h.Users.RegisterMember(r)
		h.Biodata.RegisterMember(r)
		h.Contacts.RegisterMember(r)
		h.Favourites.RegisterMember(r)
		h.Stories.RegisterMember(r)
		h.Dashboard.RegisterMember(r)
		h.Payments.RegisterMember(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(adminChecker, logger))

			h.Users.RegisterAdmin(r)
			h.Biodata.RegisterAdmin(r)
			h.Contacts.RegisterAdmin(r)
			h.Stories.RegisterAdmin(r)
			h.Dashboard.RegisterAdmin(r)
		})
	})

	return r
}
