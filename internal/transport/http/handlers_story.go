package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/internal/platform/middleware"
	"github.com/ana-yet/soulmate-server-side-code/internal/story"
)

// StoryService defines the success-story operations the transport layer
// needs.
type StoryService interface {
	Submit(ctx context.Context, st *story.Story) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*story.Story, error)
	Approve(ctx context.Context, actor string, id uuid.UUID) error
	ListApproved(ctx context.Context, limit int) ([]*story.Story, error)
	ListPending(ctx context.Context) ([]*story.Story, error)
}

// StoryHandler exposes success-story submission, the public showcase, and
// the admin review queue.
type StoryHandler struct {
	stories StoryService
	logger  *slog.Logger
}

func NewStoryHandler(stories StoryService, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{stories: stories, logger: logger}
}

// RegisterPublic wires the showcase routes.
func (h *StoryHandler) RegisterPublic(r chi.Router) {
	r.Get("/success-stories", h.handleListApproved)
	r.Get("/success-stories/{id}", h.handleGet)
}

// RegisterMember wires story submission.
func (h *StoryHandler) RegisterMember(r chi.Router) {
	r.Post("/success-stories", h.handleSubmit)
}

// RegisterAdmin wires the review queue.
func (h *StoryHandler) RegisterAdmin(r chi.Router) {
	r.Patch("/accept-success-story/{id}", h.handleApprove)
	r.Get("/pending-success-stories", h.handleListPending)
}

func (h *StoryHandler) handleListApproved(w http.ResponseWriter, r *http.Request) {
	limit := 4
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, invalidQueryParam("limit"))
			return
		}
		if n > 0 && n <= 100 {
			limit = n
		}
	}
	stories, err := h.stories.ListApproved(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stories)
}

func (h *StoryHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	st, err := h.stories.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, st)
}

func (h *StoryHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var st story.Story
	if err := decodeJSON(r, &st); err != nil {
		WriteError(w, err)
		return
	}
	id, err := h.stories.Submit(r.Context(), &st)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"_id": id.String()})
}

func (h *StoryHandler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.stories.Approve(r.Context(), middleware.GetPrincipal(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "success story approved"})
}

func (h *StoryHandler) handleListPending(w http.ResponseWriter, r *http.Request) {
	stories, err := h.stories.ListPending(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stories)
}
