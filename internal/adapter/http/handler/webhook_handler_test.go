package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kudipay/kudipay/internal/adapter/http/handler"
	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/gateway"
)

type stubWebhookService struct {
	dispatched []*domain.InboundEvent
	err        error
}

func (s *stubWebhookService) Dispatch(ctx context.Context, evt *domain.InboundEvent) error {
	s.dispatched = append(s.dispatched, evt)
	return s.err
}

const testSecret = "sk_test_webhook_secret"

func deliver(t *testing.T, h *handler.WebhookHandler, payload, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/paystack", strings.NewReader(payload))
	if signature != "" {
		req.Header.Set(gateway.SignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	h.Receive(rec, req)

	return rec
}

func TestWebhookHandler_Receive(t *testing.T) {
	verifier := gateway.NewVerifier(testSecret)
	validPayload := `{"event":"charge.success","data":{"amount":500000,"reference":"T1","metadata":{"wallet_id":"w1"}}}`

	t.Run("valid delivery is dispatched", func(t *testing.T) {
		svc := &stubWebhookService{}
		h := handler.NewWebhookHandler(verifier, svc, nil, nil)

		rec := deliver(t, h, validPayload, verifier.Sign([]byte(validPayload)))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if len(svc.dispatched) != 1 {
			t.Fatalf("dispatched %d events, want 1", len(svc.dispatched))
		}
		if svc.dispatched[0].Kind != domain.EventFundsReceived {
			t.Errorf("kind = %s", svc.dispatched[0].Kind)
		}
	})

	t.Run("missing signature", func(t *testing.T) {
		svc := &stubWebhookService{}
		h := handler.NewWebhookHandler(verifier, svc, nil, nil)

		rec := deliver(t, h, validPayload, "")

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if len(svc.dispatched) != 0 {
			t.Error("unsigned delivery was dispatched")
		}
	})

	t.Run("signature mismatch", func(t *testing.T) {
		svc := &stubWebhookService{}
		h := handler.NewWebhookHandler(verifier, svc, nil, nil)

		tampered := strings.Replace(validPayload, "500000", "900000", 1)
		rec := deliver(t, h, tampered, verifier.Sign([]byte(validPayload)))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if len(svc.dispatched) != 0 {
			t.Error("tampered delivery was dispatched")
		}
	})

	t.Run("malformed payload acknowledged", func(t *testing.T) {
		svc := &stubWebhookService{}
		h := handler.NewWebhookHandler(verifier, svc, nil, nil)

		// Authenticated but missing required fields.
		payload := `{"event":"charge.success","data":{"amount":0}}`
		rec := deliver(t, h, payload, verifier.Sign([]byte(payload)))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200 so redelivery stops", rec.Code)
		}
		if len(svc.dispatched) != 0 {
			t.Error("malformed delivery was dispatched")
		}
	})

	t.Run("unrecognized event acknowledged", func(t *testing.T) {
		svc := &stubWebhookService{}
		h := handler.NewWebhookHandler(verifier, svc, nil, nil)

		payload := `{"event":"invoice.create","data":{}}`
		rec := deliver(t, h, payload, verifier.Sign([]byte(payload)))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if len(svc.dispatched) != 0 {
			t.Error("unrecognized event was dispatched")
		}
	})

	t.Run("dispatch failure asks for redelivery", func(t *testing.T) {
		svc := &stubWebhookService{err: errors.New("queue full")}
		h := handler.NewWebhookHandler(verifier, svc, nil, nil)

		rec := deliver(t, h, validPayload, verifier.Sign([]byte(validPayload)))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}
