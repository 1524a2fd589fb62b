package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/internal/biodata"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/middleware"
)

// BiodataService defines the profile operations the transport layer needs.
type BiodataService interface {
	Create(ctx context.Context, b *biodata.Biodata) (int64, error)
	Update(ctx context.Context, principal string, storageID uuid.UUID, b *biodata.Biodata) error
	Get(ctx context.Context, storageID uuid.UUID) (*biodata.Biodata, error)
	GetByOwner(ctx context.Context, email string) (*biodata.Biodata, error)
	Similar(ctx context.Context, storageID uuid.UUID) ([]*biodata.Biodata, error)
	Premium(ctx context.Context, ageAscending bool) ([]*biodata.Biodata, error)
	Search(ctx context.Context, f biodata.SearchFilter) (*biodata.SearchResult, error)
	RequestPremium(ctx context.Context, storageID uuid.UUID) error
	ApprovePremium(ctx context.Context, actor string, biodataID int64) error
	PendingPremium(ctx context.Context) ([]*biodata.Biodata, error)
}

// BiodataHandler exposes the profile directory: the public listing, member
// profile management, and the admin premium queue.
type BiodataHandler struct {
	profiles BiodataService
	logger   *slog.Logger
}

func NewBiodataHandler(profiles BiodataService, logger *slog.Logger) *BiodataHandler {
	return &BiodataHandler{profiles: profiles, logger: logger}
}

// RegisterPublic wires the unauthenticated listing routes.
func (h *BiodataHandler) RegisterPublic(r chi.Router) {
	r.Get("/biodatas", h.handleSearch)
	r.Get("/biodata/premium", h.handlePremium)
}

// RegisterMember wires the authenticated profile routes.
func (h *BiodataHandler) RegisterMember(r chi.Router) {
	r.Get("/biodata", h.handleOwn)
	r.Get("/singleBiodata/{id}", h.handleGet)
	r.Get("/biodata/similar/{id}", h.handleSimilar)
	r.Post("/biodata", h.handleCreate)
	r.Patch("/biodata/{id}", h.handleUpdate)
	r.Patch("/request-premium/{id}", h.handleRequestPremium)
}

// RegisterAdmin wires the premium approval queue.
func (h *BiodataHandler) RegisterAdmin(r chi.Router) {
	r.Patch("/approve-premium/{biodataId}", h.handleApprovePremium)
	r.Get("/pending-premium-biodatas", h.handlePendingPremium)
}

func (h *BiodataHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSearchFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	result, err := h.profiles.Search(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func (h *BiodataHandler) handlePremium(w http.ResponseWriter, r *http.Request) {
	ageAscending := r.URL.Query().Get("sort") != "desc"
	items, err := h.profiles.Premium(r.Context(), ageAscending)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (h *BiodataHandler) handleOwn(w http.ResponseWriter, r *http.Request) {
	b, err := h.profiles.GetByOwner(r.Context(), middleware.GetPrincipal(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}
	// A member without a profile gets null, not 404.
	WriteJSON(w, http.StatusOK, b)
}

func (h *BiodataHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	b, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, b)
}

func (h *BiodataHandler) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	items, err := h.profiles.Similar(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (h *BiodataHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var b biodata.Biodata
	if err := decodeJSON(r, &b); err != nil {
		WriteError(w, err)
		return
	}
	// The profile belongs to whoever is signed in, whatever the body says.
	b.ContactEmail = middleware.GetPrincipal(r.Context())
	biodataID, err := h.profiles.Create(r.Context(), &b)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]int64{"biodataId": biodataID})
}

func (h *BiodataHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	var b biodata.Biodata
	if err := decodeJSON(r, &b); err != nil {
		WriteError(w, err)
		return
	}
	if err := h.profiles.Update(r.Context(), middleware.GetPrincipal(r.Context()), id, &b); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "biodata updated"})
}

func (h *BiodataHandler) handleRequestPremium(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.profiles.RequestPremium(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "premium requested"})
}

func (h *BiodataHandler) handleApprovePremium(w http.ResponseWriter, r *http.Request) {
	biodataID, err := int64Param(r, "biodataId")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.profiles.ApprovePremium(r.Context(), middleware.GetPrincipal(r.Context()), biodataID); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "premium approved"})
}

func (h *BiodataHandler) handlePendingPremium(w http.ResponseWriter, r *http.Request) {
	items, err := h.profiles.PendingPremium(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func parseSearchFilter(r *http.Request) (biodata.SearchFilter, error) {
	q := r.URL.Query()
	filter := biodata.SearchFilter{
		Search:   q.Get("search"),
		Type:     biodata.Type(q.Get("biodataType")),
		Division: q.Get("division"),
		Page:     1,
		Limit:    10,
	}
	for name, dst := range map[string]*int{
		"minAge": &filter.MinAge,
		"maxAge": &filter.MaxAge,
		"page":   &filter.Page,
		"limit":  &filter.Limit,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return biodata.SearchFilter{}, invalidQueryParam(name)
		}
		*dst = n
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}
	return filter, nil
}
