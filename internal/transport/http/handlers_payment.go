package httptransport

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ana-yet/soulmate-server-side-code/internal/payment"
	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
)

// PaymentHandler opens payment intents for the contact-request fee.
type PaymentHandler struct {
	intents payment.IntentCreator
	logger  *slog.Logger
}

func NewPaymentHandler(intents payment.IntentCreator, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{intents: intents, logger: logger}
}

// RegisterMember wires the intent route.
func (h *PaymentHandler) RegisterMember(r chi.Router) {
	r.Post("/create-payment-intent", h.handleCreateIntent)
}

func (h *PaymentHandler) handleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Price float64 `json:"price"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Price <= 0 {
		WriteError(w, domerrors.New(domerrors.CodeValidation, "price must be positive"))
		return
	}
	amount := int64(math.Round(req.Price * 100))
	intent, err := h.intents.CreateIntent(r.Context(), amount)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"clientSecret": intent.ClientSecret})
}
