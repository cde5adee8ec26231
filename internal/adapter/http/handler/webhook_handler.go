package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/gateway"
	"github.com/kudipay/kudipay/internal/infrastructure/metrics"
)

// maxWebhookBody bounds the raw payload read. Gateway events are small; a
// larger body is not a legitimate delivery.
const maxWebhookBody = 1 << 20

// WebhookService defines the behavior needed by WebhookHandler.
type WebhookService interface {
	Dispatch(ctx context.Context, evt *domain.InboundEvent) error
}

// WebhookHandler receives signed gateway deliveries. Verification runs over
// the raw body exactly as received, before any parsing.
type WebhookHandler struct {
	verifier  *gateway.Verifier
	webhookUC WebhookService
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(
	verifier *gateway.Verifier,
	webhookUC WebhookService,
	logger *slog.Logger,
	m *metrics.Metrics,
) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &WebhookHandler{
		verifier:  verifier,
		webhookUC: webhookUC,
		logger:    logger,
		metrics:   m,
	}
}

// Receive handles one webhook delivery. Status classes are part of the
// contract with the gateway's redelivery loop: 2xx acknowledges and stops
// redelivery, 401 flags a signature mismatch, 5xx asks for redelivery.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body", "")
		return
	}

	if err := h.verifier.Verify(body, r.Header.Get(gateway.SignatureHeader)); err != nil {
		if errors.Is(err, domain.ErrMissingSignature) {
			h.deny(w, http.StatusBadRequest, "missing")
			return
		}
		h.deny(w, http.StatusUnauthorized, "mismatch")
		return
	}

	evt, err := gateway.Classify(body)
	if err != nil {
		// Authenticated but unusable. Acknowledge so the gateway stops
		// redelivering a payload that will never parse.
		if h.metrics != nil {
			h.metrics.EventsDropped.WithLabelValues("malformed").Inc()
		}
		h.logger.Warn("malformed webhook payload acknowledged", "error", err)
		writeJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})

		return
	}

	if evt.Kind == domain.EventUnrecognized {
		if h.metrics != nil {
			h.metrics.EventsReceived.WithLabelValues(string(evt.Kind)).Inc()
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})

		return
	}

	if err := h.webhookUC.Dispatch(r.Context(), evt); err != nil {
		// Not acknowledged; the gateway will redeliver.
		h.logger.Error("webhook dispatch failed",
			"kind", string(evt.Kind), "error", err)
		writeError(w, http.StatusInternalServerError, "event not accepted", "")

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *WebhookHandler) deny(w http.ResponseWriter, status int, reason string) {
	if h.metrics != nil {
		h.metrics.SignatureDenied.WithLabelValues(reason).Inc()
	}
	h.logger.Warn("webhook signature denied", "reason", reason)
	writeError(w, status, "signature verification failed", "")
}
