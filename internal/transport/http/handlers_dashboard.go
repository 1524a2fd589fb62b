package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ana-yet/soulmate-server-side-code/internal/dashboard"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/middleware"
)

// DashboardService defines the aggregate reads the transport layer needs.
type DashboardService interface {
	AdminStats(ctx context.Context) (*dashboard.AdminStats, error)
	UserSummary(ctx context.Context, email string) (*dashboard.UserSummary, error)
	PublicCounters(ctx context.Context) (*dashboard.PublicCounters, error)
}

// DashboardHandler exposes the rollup endpoints.
type DashboardHandler struct {
	dashboards DashboardService
	logger     *slog.Logger
}

func NewDashboardHandler(dashboards DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, logger: logger}
}

// RegisterPublic wires the landing-page counters.
func (h *DashboardHandler) RegisterPublic(r chi.Router) {
	r.Get("/success-counter", h.handlePublicCounters)
}

// RegisterMember wires the member dashboard.
func (h *DashboardHandler) RegisterMember(r chi.Router) {
	r.Get("/user-dashboard-summary", h.handleUserSummary)
}

// RegisterAdmin wires the admin rollup.
func (h *DashboardHandler) RegisterAdmin(r chi.Router) {
	r.Get("/admin-dashboard-stats", h.handleAdminStats)
}

func (h *DashboardHandler) handlePublicCounters(w http.ResponseWriter, r *http.Request) {
	counters, err := h.dashboards.PublicCounters(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, counters)
}

func (h *DashboardHandler) handleUserSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboards.UserSummary(r.Context(), middleware.GetPrincipal(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

func (h *DashboardHandler) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboards.AdminStats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
