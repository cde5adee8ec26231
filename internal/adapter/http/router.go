package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/kudipay/kudipay/internal/adapter/http/handler"
	"github.com/kudipay/kudipay/internal/adapter/http/middleware"
	"github.com/kudipay/kudipay/internal/infrastructure/auth"
	"github.com/kudipay/kudipay/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler    *handler.WalletHandler
	WebhookHandler   *handler.WebhookHandler
	HealthHandler    *handler.HealthHandler
	AdminHandler     *handler.AdminHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and observability
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Gateway callbacks. Authenticated by signature, never by bearer token,
	// and never behind the idempotency middleware: replay detection for
	// events is the ledger's dedup key, not a client header.
	r.Post("/webhooks/paystack", cfg.WebhookHandler.Receive)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/wallets", func(r chi.Router) {
			r.Post("/", cfg.WalletHandler.Create)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))

				r.Get("/me", cfg.WalletHandler.Me)
				r.Post("/me/recipient", cfg.WalletHandler.LinkRecipient)
				r.Post("/me/dedicated-account", cfg.WalletHandler.RequestDedicatedAccount)
				r.Post("/me/deposits", cfg.WalletHandler.Deposit)
				r.Post("/me/withdrawals", cfg.WalletHandler.Withdraw)
			})
		})
	})

	// Operational endpoints, expected to be reachable only inside the
	// deployment boundary.
	r.Post("/internal/locks/sweep", cfg.AdminHandler.SweepLocks)

	return r
}
