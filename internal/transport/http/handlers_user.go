package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/internal/platform/middleware"
	"github.com/ana-yet/soulmate-server-side-code/internal/user"
)

// UserService defines the account operations the transport layer needs.
type UserService interface {
	Upsert(ctx context.Context, email, name, photoURL string) (*user.User, bool, error)
	Info(ctx context.Context, email string) (user.Info, error)
	Profile(ctx context.Context, email string) (*user.User, error)
	List(ctx context.Context, search string) ([]*user.User, error)
	Promote(ctx context.Context, actor string, id uuid.UUID) error
	GrantPremium(ctx context.Context, actor string, id uuid.UUID) error
}

// UserHandler exposes account registration, lookups, and the admin roster.
type UserHandler struct {
	users  UserService
	logger *slog.Logger
}

func NewUserHandler(users UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// RegisterPublic wires the unauthenticated account routes.
func (h *UserHandler) RegisterPublic(r chi.Router) {
	r.Post("/users", h.handleUpsert)
}

// RegisterMember wires the authenticated account routes.
func (h *UserHandler) RegisterMember(r chi.Router) {
	r.Get("/users/info/{email}", h.handleInfo)
	r.Get("/my-profile", h.handleProfile)
}

// RegisterAdmin wires the admin roster and role management routes.
func (h *UserHandler) RegisterAdmin(r chi.Router) {
	r.Get("/users", h.handleList)
	r.Patch("/users/admin/{id}", h.handlePromote)
	r.Patch("/users/premium/{id}", h.handleGrantPremium)
}

func (h *UserHandler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		PhotoURL string `json:"photoURL"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	u, created, err := h.users.Upsert(r.Context(), req.Email, req.Name, req.PhotoURL)
	if err != nil {
		WriteError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	WriteJSON(w, status, u)
}

func (h *UserHandler) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.users.Info(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, info)
}

func (h *UserHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Profile(r.Context(), middleware.GetPrincipal(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

func (h *UserHandler) handlePromote(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.users.Promote(r.Context(), middleware.GetPrincipal(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "user promoted to admin"})
}

func (h *UserHandler) handleGrantPremium(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.users.GrantPremium(r.Context(), middleware.GetPrincipal(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "user upgraded to premium"})
}
