package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/gateway"
	"github.com/kudipay/kudipay/internal/infrastructure/metrics"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return gateway.NewClient(gateway.ClientConfig{
		BaseURL:    srv.URL,
		SecretKey:  "sk_test_secret",
		MaxRetries: 2,
	})
}

func TestClient_CreateRecipient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transferrecipient", r.URL.Path)
		require.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "nuban", body["type"])
		assert.Equal(t, "Ada Lovelace", body["name"])
		assert.Equal(t, "0001234567", body["account_number"])

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Transfer recipient created successfully",
			"data":    map[string]any{"recipient_code": "RCP_t0k3n"},
		})
	})

	code, err := client.CreateRecipient(context.Background(), "Ada Lovelace", "058", "0001234567", "NGN")
	require.NoError(t, err)
	assert.Equal(t, "RCP_t0k3n", code)
}

func TestClient_InitiateTransfer_Rejected(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Your balance is not enough",
		})
	})

	err := client.InitiateTransfer(context.Background(), "RCP_t0k3n", 500000, "wd-w1-t1")
	require.ErrorIs(t, err, domain.ErrGatewayRejected)
	assert.EqualValues(t, 1, calls.Load(), "4xx responses must not be retried")
}

func TestClient_InitiateTransfer_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": true, "message": "queued"})
	})

	err := client.InitiateTransfer(context.Background(), "RCP_t0k3n", 500000, "wd-w1-t1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestClient_CountsRequestsByOutcome(t *testing.T) {
	m := metrics.New()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": true, "message": "queued"})
	}))
	t.Cleanup(srv.Close)

	client := gateway.NewClient(gateway.ClientConfig{
		BaseURL:    srv.URL,
		SecretKey:  "sk_test_secret",
		MaxRetries: 2,
		Metrics:    m,
	})

	err := client.InitiateTransfer(context.Background(), "RCP_t0k3n", 500000, "wd-w1-t1")
	require.NoError(t, err)

	// One failed attempt, one successful retry, both counted per attempt.
	assert.EqualValues(t, 1, testutil.ToFloat64(m.GatewayRequests.WithLabelValues("initiate_transfer", "unavailable")))
	assert.EqualValues(t, 1, testutil.ToFloat64(m.GatewayRequests.WithLabelValues("initiate_transfer", "ok")))
}

func TestClient_InitializeCharge(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/initialize", r.URL.Path)

		var body struct {
			Amount   int64          `json:"amount"`
			Metadata map[string]any `json:"metadata"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 500000, body.Amount)
		assert.Equal(t, "01J8ZQWALLET", body.Metadata["wallet_id"])

		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"reference":         "T685312322670591",
			},
		})
	})

	url, err := client.InitializeCharge(context.Background(), "ada@example.com", 500000, "01J8ZQWALLET")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", url)
}
