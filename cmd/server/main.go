package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/kudipay/kudipay/internal/adapter/http"
	"github.com/kudipay/kudipay/internal/adapter/http/handler"
	postgresRepo "github.com/kudipay/kudipay/internal/adapter/repository/postgres"
	redisRepo "github.com/kudipay/kudipay/internal/adapter/repository/redis"
	"github.com/kudipay/kudipay/internal/gateway"
	"github.com/kudipay/kudipay/internal/infrastructure/auth"
	"github.com/kudipay/kudipay/internal/infrastructure/config"
	"github.com/kudipay/kudipay/internal/infrastructure/logging"
	"github.com/kudipay/kudipay/internal/infrastructure/metrics"
	"github.com/kudipay/kudipay/internal/infrastructure/postgres"
	"github.com/kudipay/kudipay/internal/infrastructure/redis"
	"github.com/kudipay/kudipay/internal/usecase"
	"github.com/kudipay/kudipay/internal/worker"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogFormat != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	slogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Metrics
	m := metrics.New()

	// Initialize repositories
	retrier := postgresRepo.NewRetrier(slogger)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool, retrier)
	lockRepo := postgresRepo.NewLockRepository(pool, slogger)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Payment gateway
	verifier := gateway.NewVerifier(cfg.PaystackSecretKey)
	gatewayClient := gateway.NewClient(gateway.ClientConfig{
		BaseURL:    cfg.PaystackBaseURL,
		SecretKey:  cfg.PaystackSecretKey,
		Timeout:    cfg.PaystackTimeout,
		MaxRetries: cfg.PaystackMaxRetries,
		Metrics:    m,
	})

	// Post-ack worker pool
	taskPool := worker.NewPool(worker.PoolConfig{
		Workers:   cfg.WorkerCount,
		QueueSize: cfg.WorkerQueueSize,
		Logger:    slogger,
		Metrics:   m,
	})

	// Initialize use cases
	walletUC := usecase.NewWalletUseCase(walletRepo, gatewayClient, idGen, cfg.DVAPreferredBank, slogger)
	webhookUC := usecase.NewWebhookUseCase(walletRepo, ledgerRepo, lockRepo, taskPool, slogger, m)
	withdrawUC := usecase.NewWithdrawUseCase(walletRepo, lockRepo, gatewayClient, idGen, cfg.WithdrawLockMaxAge, slogger, m)

	// Authentication
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize handlers
	walletHandler := handler.NewWalletHandler(walletUC, withdrawUC)
	webhookHandler := handler.NewWebhookHandler(verifier, webhookUC, slogger, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)
	adminHandler := handler.NewAdminHandler(withdrawUC)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:    walletHandler,
		WebhookHandler:   webhookHandler,
		HealthHandler:    healthHandler,
		AdminHandler:     adminHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logger:           log.Logger,
	})

	// Background workers
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	// The pool drains acked work on shutdown; poolDone gates process exit on
	// that drain finishing.
	poolDone := make(chan struct{})
	go func() {
		defer close(poolDone)
		if err := taskPool.Start(workerCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("worker pool exited")
		}
	}()

	sweeper := worker.NewLockSweeper(withdrawUC, cfg.LockSweepInterval, slogger)
	go func() {
		if err := sweeper.Start(workerCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("lock sweeper exited")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	stopWorkers()
	<-poolDone
	log.Info().Msg("server stopped")
}
