package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
)

const stripeIntentsURL = "https://api.stripe.com/v1/payment_intents"

// StripeClient creates payment intents against the Stripe REST API.
// Amounts are in the smallest currency unit, matching Stripe's contract.
type StripeClient struct {
	key      string
	currency string
	http     *http.Client
}

func NewStripeClient(key, currency string) *StripeClient {
	return &StripeClient{
		key:      key,
		currency: currency,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *StripeClient) CreateIntent(ctx context.Context, amount int64) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", c.currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, stripeIntentsURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build payment intent request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domerrors.Wrap(domerrors.CodeUnavailable, "payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, domerrors.New(domerrors.CodeUnavailable,
			fmt.Sprintf("payment gateway rejected intent: %s", apiErr.Error.Message))
	}

	var body struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
		Amount       int64  `json:"amount"`
		Currency     string `json:"currency"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode payment intent response: %w", err)
	}

	return &Intent{
		ID:           body.ID,
		ClientSecret: body.ClientSecret,
		Amount:       body.Amount,
		Currency:     body.Currency,
	}, nil
}
