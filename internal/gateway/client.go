package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/infrastructure/metrics"
)

const defaultBaseURL = "https://api.paystack.co"

// ClientConfig configures the gateway API client.
type ClientConfig struct {
	BaseURL    string
	SecretKey  string
	Timeout    time.Duration
	MaxRetries uint64
	Metrics    *metrics.Metrics
}

// Client talks to the payment gateway's REST API. Amounts cross this
// boundary in minor units (kobo).
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	maxRetries uint64
	metrics    *metrics.Metrics
}

// NewClient creates a gateway API client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		metrics:    cfg.Metrics,
	}
}

// envelope is the gateway's standard response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// CreateRecipient registers a bank account as a transfer recipient and
// returns the gateway's recipient handle.
func (c *Client) CreateRecipient(ctx context.Context, name, bankCode, accountNumber, currency string) (string, error) {
	body := map[string]any{
		"type":           "nuban",
		"name":           name,
		"bank_code":      bankCode,
		"account_number": accountNumber,
		"currency":       currency,
	}

	var data struct {
		RecipientCode string `json:"recipient_code"`
	}
	if err := c.post(ctx, "create_recipient", "/transferrecipient", body, &data); err != nil {
		return "", err
	}
	if data.RecipientCode == "" {
		return "", fmt.Errorf("%w: no recipient code in response", domain.ErrGatewayRejected)
	}

	return data.RecipientCode, nil
}

// InitiateTransfer asks the gateway to pay out amountMinor to the recipient.
// Acceptance here does not move local funds; the debit is applied when the
// confirming webhook arrives.
func (c *Client) InitiateTransfer(ctx context.Context, recipientCode string, amountMinor int64, reference string) error {
	body := map[string]any{
		"source":    "balance",
		"amount":    amountMinor,
		"recipient": recipientCode,
		"reference": reference,
		"reason":    "wallet withdrawal",
	}

	return c.post(ctx, "initiate_transfer", "/transfer", body, nil)
}

// AssignDedicatedAccount requests a dedicated virtual account for the wallet.
// The result arrives later via webhook, not in this call's response.
func (c *Client) AssignDedicatedAccount(ctx context.Context, w *domain.Wallet, preferredBank string) error {
	body := map[string]any{
		"email":         w.Email,
		"first_name":    w.FirstName,
		"last_name":     w.LastName,
		"phone":         w.Phone,
		"preferredBank": preferredBank,
		"country":       "NG",
	}

	return c.post(ctx, "assign_dedicated_account", "/dedicated_account/assign", body, nil)
}

// InitializeCharge opens a charge session tagged with the wallet ID, so the
// resulting credit event can be correlated directly.
func (c *Client) InitializeCharge(ctx context.Context, email string, amountMinor int64, walletID string) (string, error) {
	body := map[string]any{
		"email":    email,
		"amount":   amountMinor,
		"currency": "NGN",
		"metadata": map[string]any{"wallet_id": walletID},
		"channels": []string{"card", "bank", "bank_transfer"},
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	}
	if err := c.post(ctx, "initialize_charge", "/transaction/initialize", body, &data); err != nil {
		return "", err
	}

	return data.AuthorizationURL, nil
}

// post sends a JSON request and decodes the envelope's data field into out.
// Network errors and 5xx responses are retried with exponential backoff;
// gateway references make the calls safe to repeat.
func (c *Client) post(ctx context.Context, op, path string, body map[string]any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	operation := func() error {
		return c.doOnce(ctx, op, path, payload, out)
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries),
		ctx,
	)

	return backoff.Retry(operation, b)
}

func (c *Client) doOnce(ctx context.Context, op, path string, payload []byte, out any) error {
	err := c.send(ctx, path, payload, out)
	c.observe(op, err)
	return err
}

// observe counts one gateway attempt by operation and outcome.
func (c *Client) observe(op string, err error) {
	if c.metrics == nil {
		return
	}

	outcome := "ok"
	switch {
	case errors.Is(err, domain.ErrGatewayUnavailable):
		outcome = "unavailable"
	case err != nil:
		outcome = "rejected"
	}
	c.metrics.GatewayRequests.WithLabelValues(op, outcome).Inc()
}

func (c *Client) send(ctx context.Context, path string, payload []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return backoff.Permanent(fmt.Errorf("%w: undecodable response", domain.ErrGatewayRejected))
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Status {
		return backoff.Permanent(fmt.Errorf("%w: %s", domain.ErrGatewayRejected, env.Message))
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: undecodable response data", domain.ErrGatewayRejected))
		}
	}

	return nil
}
