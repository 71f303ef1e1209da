package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"samad-backend/internal/logger"
)

// Client wraps the two Paystack calls the site needs: initialize a
// transaction and verify one. Unlike the Spotify reads, payment failures
// are hard errors; a purchase must never silently proceed on a gateway
// problem.
type Client struct {
	secretKey string
	baseURL   string
	client    *http.Client
	logger    *logger.Logger
}

// InitializeRequest is the payload for starting a transaction. Amount is
// in kobo. Metadata rides through Paystack untouched and comes back on
// verification.
type InitializeRequest struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Reference   string                 `json:"reference"`
	Currency    string                 `json:"currency,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CallbackURL string                 `json:"callback_url,omitempty"`
}

// InitializeResponse carries the checkout handoff details.
type InitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifyResponse is the transaction state after checkout. Status is
// Paystack's transaction status ("success", "failed", "abandoned").
type VerifyResponse struct {
	Status    string                 `json:"status"`
	Reference string                 `json:"reference"`
	Amount    int64                  `json:"amount"`
	Currency  string                 `json:"currency"`
	PaidAt    string                 `json:"paid_at"`
	Channel   string                 `json:"channel"`
	Metadata  map[string]interface{} `json:"metadata"`
	Customer  struct {
		Email string `json:"email"`
	} `json:"customer"`
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func New(secretKey, baseURL string, client *http.Client, log *logger.Logger) (*Client, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("paystack secret key is required")
	}
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    client,
		logger:    log,
	}, nil
}

// Initialize starts a transaction and returns the checkout handoff.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	var out InitializeResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify fetches the final state of a transaction by its reference.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	var out VerifyResponse
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode paystack request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode paystack response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.Status {
		if c.logger != nil {
			c.logger.Error("PAYSTACK", fmt.Sprintf("%s %s failed: %s", method, path, envelope.Message))
		}
		return fmt.Errorf("paystack error: %s", envelope.Message)
	}

	return json.Unmarshal(envelope.Data, out)
}

// ToKobo converts a naira amount to kobo, rounding to the nearest kobo.
func ToKobo(naira float64) int64 {
	return int64(math.Round(naira * 100))
}

// FromKobo converts kobo back to naira.
func FromKobo(kobo int64) float64 {
	return float64(kobo) / 100
}
