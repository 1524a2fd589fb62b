package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ana-yet/soulmate-server-side-code/internal/biodata"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/middleware"
	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
)

// FavouriteService defines the bookmark operations the transport layer
// needs.
type FavouriteService interface {
	Add(ctx context.Context, userEmail string, biodataID int64) error
	Remove(ctx context.Context, userEmail string, biodataID int64) error
	Check(ctx context.Context, userEmail string, biodataID int64) (bool, error)
	List(ctx context.Context, userEmail string) ([]*biodata.Biodata, error)
}

// FavouriteHandler exposes profile bookmarks. Every route operates on the
// signed-in member's own list; the email path params exist for client
// compatibility and must match the principal.
type FavouriteHandler struct {
	favourites FavouriteService
	logger     *slog.Logger
}

func NewFavouriteHandler(favourites FavouriteService, logger *slog.Logger) *FavouriteHandler {
	return &FavouriteHandler{favourites: favourites, logger: logger}
}

// RegisterMember wires the bookmark routes.
func (h *FavouriteHandler) RegisterMember(r chi.Router) {
	r.Post("/favourites", h.handleAdd)
	r.Delete("/favourites", h.handleRemove)
	r.Get("/favourites/{email}", h.handleList)
	r.Get("/favourites/check/{email}/{biodataId}", h.handleCheck)
}

func (h *FavouriteHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BiodataID int64 `json:"biodataId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := h.favourites.Add(r.Context(), middleware.GetPrincipal(r.Context()), req.BiodataID); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"message": "added to favourites"})
}

func (h *FavouriteHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BiodataID int64 `json:"biodataId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if err := h.favourites.Remove(r.Context(), middleware.GetPrincipal(r.Context()), req.BiodataID); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "removed from favourites"})
}

func (h *FavouriteHandler) handleList(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := requirePrincipalEmail(r, email); err != nil {
		WriteError(w, err)
		return
	}
	profiles, err := h.favourites.List(r.Context(), email)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profiles)
}

func (h *FavouriteHandler) handleCheck(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := requirePrincipalEmail(r, email); err != nil {
		WriteError(w, err)
		return
	}
	biodataID, err := int64Param(r, "biodataId")
	if err != nil {
		WriteError(w, err)
		return
	}
	exists, err := h.favourites.Check(r.Context(), email, biodataID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"isFavourite": exists})
}

func requirePrincipalEmail(r *http.Request, email string) error {
	if !strings.EqualFold(email, middleware.GetPrincipal(r.Context())) {
		return domerrors.New(domerrors.CodeForbidden, "not your favourites")
	}
	return nil
}
