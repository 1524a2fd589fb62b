package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Intent is the gateway's handle for a payment attempt. The client secret
// is handed to the browser; the server never sees card data.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// IntentCreator is the payment-gateway port. Adapters (Stripe, mock)
// implement it so the transport layer stays independent of the gateway.
type IntentCreator interface {
	// CreateIntent opens a payment intent for the given amount in the
	// smallest currency unit (cents for USD).
	CreateIntent(ctx context.Context, amount int64) (*Intent, error)
}

// MockIntentCreator issues deterministic intents without contacting a
// gateway. Used in development when no gateway key is configured, and in
// tests. A configurable latency mimics real-world calls.
type MockIntentCreator struct {
	Latency  time.Duration
	Currency string
}

func (c MockIntentCreator) CreateIntent(_ context.Context, amount int64) (*Intent, error) {
	time.Sleep(c.Latency)
	id := "pi_mock_" + uuid.NewString()
	return &Intent{
		ID:           id,
		ClientSecret: fmt.Sprintf("%s_secret_%s", id, uuid.NewString()),
		Amount:       amount,
		Currency:     c.Currency,
	}, nil
}
