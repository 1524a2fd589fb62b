package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/internal/contact"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/middleware"
)

// ContactService defines the disclosure operations the transport layer
// needs.
type ContactService interface {
	Create(ctx context.Context, requesterEmail string, requestedBiodataID int64, requesterName string) (*contact.Request, error)
	Approve(ctx context.Context, actor string, id uuid.UUID) error
	ListForRequester(ctx context.Context, email string) ([]contact.DisclosureView, error)
	Delete(ctx context.Context, id uuid.UUID, requesterEmail string) error
	ListPending(ctx context.Context) ([]*contact.Request, error)
}

// ContactHandler exposes the contact disclosure workflow. Private contact
// fields only ever leave through the service's gated views.
type ContactHandler struct {
	contacts ContactService
	logger   *slog.Logger
}

func NewContactHandler(contacts ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger}
}

// RegisterMember wires the requester-side routes.
func (h *ContactHandler) RegisterMember(r chi.Router) {
	r.Post("/biodata-requests", h.handleCreate)
	r.Get("/my-contact-requests", h.handleListMine)
	r.Delete("/delete-contact-requests/{id}", h.handleDelete)
}

// RegisterAdmin wires the approval queue.
func (h *ContactHandler) RegisterAdmin(r chi.Router) {
	r.Patch("/approve-contact/{id}", h.handleApprove)
	r.Get("/pending-contact-requests", h.handleListPending)
}

func (h *ContactHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BiodataID int64  `json:"biodataId"`
		Name      string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	created, err := h.contacts.Create(r.Context(), middleware.GetPrincipal(r.Context()), req.BiodataID, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (h *ContactHandler) handleListMine(w http.ResponseWriter, r *http.Request) {
	views, err := h.contacts.ListForRequester(r.Context(), middleware.GetPrincipal(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, views)
}

func (h *ContactHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.contacts.Delete(r.Context(), id, middleware.GetPrincipal(r.Context())); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "request deleted"})
}

func (h *ContactHandler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.contacts.Approve(r.Context(), middleware.GetPrincipal(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "contact request approved"})
}

func (h *ContactHandler) handleListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.contacts.ListPending(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, requests)
}
