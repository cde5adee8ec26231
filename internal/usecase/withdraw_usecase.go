package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/infrastructure/metrics"
)

// WithdrawUseCase drives the synchronous withdrawal path:
// requested -> balance-checked -> lock-acquired -> gateway-call-issued ->
// {accepted: await confirmation webhook | rejected: lock released}.
// The debit itself is deferred to the confirming event; nothing here touches
// the balance.
type WithdrawUseCase struct {
	wallets    WalletRepository
	locks      WithdrawalLockRepository
	gateway    GatewayClient
	idGen      IDGenerator
	lockMaxAge time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewWithdrawUseCase creates a new WithdrawUseCase. lockMaxAge bounds how
// long a withdrawal lock may sit without a confirming or failing event
// before the sweeper may force-release it.
func NewWithdrawUseCase(
	wallets WalletRepository,
	locks WithdrawalLockRepository,
	gw GatewayClient,
	idGen IDGenerator,
	lockMaxAge time.Duration,
	logger *slog.Logger,
	m *metrics.Metrics,
) *WithdrawUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &WithdrawUseCase{
		wallets:    wallets,
		locks:      locks,
		gateway:    gw,
		idGen:      idGen,
		lockMaxAge: lockMaxAge,
		logger:     logger,
		metrics:    m,
	}
}

// WithdrawInput represents one withdrawal request.
type WithdrawInput struct {
	WalletID string
	// Amount in major units.
	Amount decimal.Decimal
}

// WithdrawResult reports an accepted withdrawal awaiting confirmation.
type WithdrawResult struct {
	Reference string
	Amount    decimal.Decimal
	Status    string
}

// Withdraw runs the withdrawal flow. The balance check is advisory
// pre-flight only; the lock is what prevents a double spend. Once the
// gateway accepts, the outcome is tracked via webhook - there is no
// client-side cancellation that reverses gateway-side effects.
func (uc *WithdrawUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*WithdrawResult, error) {
	wallet, err := uc.wallets.GetByID(ctx, input.WalletID)
	if err != nil {
		return nil, err
	}

	if err := wallet.ValidateWithdrawal(input.Amount); err != nil {
		uc.reject(err)
		return nil, err
	}

	amountMinor, err := domain.MajorToMinor(input.Amount)
	if err != nil {
		uc.reject(err)
		return nil, err
	}

	acquired, err := uc.locks.TryAcquire(ctx, wallet.ID)
	if err != nil {
		return nil, fmt.Errorf("acquire withdrawal lock: %w", err)
	}
	if !acquired {
		uc.reject(domain.ErrWithdrawalInProgress)
		return nil, domain.ErrWithdrawalInProgress
	}

	reference := domain.WithdrawalReference(wallet.ID, uc.idGen.Generate())

	if err := uc.gateway.InitiateTransfer(ctx, wallet.RecipientCode, amountMinor, reference); err != nil {
		// The wallet must not stay locked behind one failed attempt.
		if relErr := uc.locks.Release(ctx, wallet.ID); relErr != nil {
			uc.logger.Error("failed to release lock after gateway error",
				"wallet_id", wallet.ID, "error", relErr)
		}

		uc.reject(err)
		uc.logger.Warn("withdrawal not accepted by gateway",
			"wallet_id", wallet.ID, "reference", reference, "error", err)

		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalsInitiated.Inc()
	}
	uc.logger.Info("withdrawal initiated, awaiting confirmation",
		"wallet_id", wallet.ID, "reference", reference, "amount", input.Amount.String())

	return &WithdrawResult{
		Reference: reference,
		Amount:    input.Amount,
		Status:    "pending",
	}, nil
}

// SweepStaleLocks force-releases withdrawal locks older than the configured
// ceiling. It backs the periodic sweeper and the on-demand internal endpoint.
func (uc *WithdrawUseCase) SweepStaleLocks(ctx context.Context) (int64, error) {
	released, err := uc.locks.ReleaseStale(ctx, uc.lockMaxAge)
	if err != nil {
		return 0, err
	}

	if released > 0 {
		if uc.metrics != nil {
			uc.metrics.StaleLocksReleased.Add(float64(released))
		}
		uc.logger.Warn("force-released stale withdrawal locks",
			"count", released, "max_age", uc.lockMaxAge.String())
	}

	return released, nil
}

func (uc *WithdrawUseCase) reject(err error) {
	if uc.metrics == nil {
		return
	}

	reason := "gateway"
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		reason = "invalid-amount"
	case errors.Is(err, domain.ErrNoRecipient):
		reason = "no-recipient"
	case errors.Is(err, domain.ErrInsufficientBalance):
		reason = "insufficient-balance"
	case errors.Is(err, domain.ErrWithdrawalInProgress):
		reason = "in-progress"
	}

	uc.metrics.WithdrawalsRejected.WithLabelValues(reason).Inc()
}
