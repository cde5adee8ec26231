package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/infrastructure/metrics"
)

// WebhookUseCase reconciles classified gateway events against wallets.
//
// Per-event state machine, terminal states only:
// received -> verified -> classified -> (resolved -> mutated)
// | (unresolved -> dropped) | (unrecognized -> acknowledged).
type WebhookUseCase struct {
	wallets WalletRepository
	ledger  LedgerRepository
	locks   WithdrawalLockRepository
	tasks   TaskQueue
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewWebhookUseCase creates a new WebhookUseCase.
func NewWebhookUseCase(
	wallets WalletRepository,
	ledger LedgerRepository,
	locks WithdrawalLockRepository,
	tasks TaskQueue,
	logger *slog.Logger,
	m *metrics.Metrics,
) *WebhookUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &WebhookUseCase{
		wallets: wallets,
		ledger:  ledger,
		locks:   locks,
		tasks:   tasks,
		logger:  logger,
		metrics: m,
	}
}

// Dispatch decides how a classified event is completed relative to the
// acknowledgement. Credit-type events are handed to the worker pool so the
// gateway gets its ack before correlation and mutation run; withdrawal
// confirmation and failure are bounded local work and complete synchronously.
// An error here means the delivery must NOT be acknowledged.
func (uc *WebhookUseCase) Dispatch(ctx context.Context, evt *domain.InboundEvent) error {
	if uc.metrics != nil {
		uc.metrics.EventsReceived.WithLabelValues(string(evt.Kind)).Inc()
	}

	switch evt.Kind {
	case domain.EventFundsReceived, domain.EventAccountAssigned:
		return uc.tasks.Enqueue("webhook/"+string(evt.Kind), func(taskCtx context.Context) error {
			return uc.Process(taskCtx, evt)
		})
	default:
		return uc.Process(ctx, evt)
	}
}

// Process applies one event's effect. It returns an error only for transient
// failures worth retrying; unresolvable or duplicate events are logged and
// absorbed so redelivery stops.
func (uc *WebhookUseCase) Process(ctx context.Context, evt *domain.InboundEvent) error {
	switch evt.Kind {
	case domain.EventAccountAssigned:
		return uc.processAccountAssigned(ctx, evt)
	case domain.EventFundsReceived:
		return uc.processFundsReceived(ctx, evt)
	case domain.EventWithdrawalConfirmed:
		return uc.processWithdrawalConfirmed(ctx, evt)
	case domain.EventWithdrawalFailed:
		return uc.processWithdrawalFailed(ctx, evt)
	default:
		return nil
	}
}

func (uc *WebhookUseCase) processAccountAssigned(ctx context.Context, evt *domain.InboundEvent) error {
	wallet, err := uc.wallets.GetByEmail(ctx, evt.Email)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			uc.drop(evt, "no-match", "no wallet for assigned account", "email", evt.Email)
			return nil
		}
		return err
	}

	err = uc.wallets.AssignDedicatedAccount(ctx, wallet.ID, evt.AccountNumber, evt.BankName, evt.AccountName)
	if err != nil {
		if errors.Is(err, domain.ErrDedicatedAccountExists) {
			// Redelivered assignment; the number is immutable once set.
			uc.logger.Warn("dedicated account already assigned",
				"wallet_id", wallet.ID, "account_number", evt.AccountNumber)
			return nil
		}
		return err
	}

	uc.logger.Info("dedicated account assigned",
		"wallet_id", wallet.ID, "bank", evt.BankName)

	return nil
}

func (uc *WebhookUseCase) processFundsReceived(ctx context.Context, evt *domain.InboundEvent) error {
	if evt.Amount.LessThanOrEqual(decimal.Zero) {
		uc.drop(evt, "malformed", "credit with non-positive amount")
		return nil
	}

	wallet, err := uc.resolve(ctx, evt)
	if err != nil {
		if errors.Is(err, domain.ErrNoMatch) {
			uc.drop(evt, "no-match", "credit event matches no wallet",
				"reference", evt.Reference, "email", evt.Email)
			return nil
		}
		return err
	}

	result, err := uc.ledger.ApplyDelta(ctx, ApplyDeltaInput{
		WalletID:  wallet.ID,
		Amount:    evt.Amount,
		Reference: evt.Reference,
	})
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			uc.drop(evt, "no-match", "wallet vanished before credit", "wallet_id", wallet.ID)
			return nil
		}
		return fmt.Errorf("apply credit %s: %w", evt.Reference, err)
	}

	if result == DeltaAlreadyApplied {
		if uc.metrics != nil {
			uc.metrics.DuplicateEvents.Inc()
		}
		uc.logger.Info("duplicate credit skipped", "reference", evt.Reference)
		return nil
	}

	if uc.metrics != nil {
		uc.metrics.CreditsApplied.Inc()
	}
	uc.logger.Info("credit applied",
		"wallet_id", wallet.ID, "reference", evt.Reference, "amount", evt.Amount.String())

	return nil
}

func (uc *WebhookUseCase) processWithdrawalConfirmed(ctx context.Context, evt *domain.InboundEvent) error {
	// The debit corresponds to funds reserved by the withdrawal lock, so it
	// bypasses the advisory balance check. Flag clear and debit are one
	// atomic step.
	result, err := uc.ledger.ApplyDelta(ctx, ApplyDeltaInput{
		WalletID:        evt.WalletID,
		Amount:          evt.Amount.Neg(),
		Reference:       evt.Reference,
		ClearWithdrawal: true,
	})
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			uc.drop(evt, "no-match", "wallet not found for withdrawal confirmation",
				"wallet_id", evt.WalletID)
			return nil
		}
		return fmt.Errorf("apply withdrawal debit %s: %w", evt.Reference, err)
	}

	if result == DeltaAlreadyApplied {
		if uc.metrics != nil {
			uc.metrics.DuplicateEvents.Inc()
		}
		uc.logger.Info("duplicate withdrawal confirmation skipped", "reference", evt.Reference)
		return nil
	}

	if uc.metrics != nil {
		uc.metrics.DebitsApplied.Inc()
	}
	uc.logger.Info("withdrawal confirmed",
		"wallet_id", evt.WalletID, "reference", evt.Reference, "amount", evt.Amount.String())

	return nil
}

func (uc *WebhookUseCase) processWithdrawalFailed(ctx context.Context, evt *domain.InboundEvent) error {
	if err := uc.locks.Release(ctx, evt.WalletID); err != nil {
		return fmt.Errorf("release withdrawal lock for %s: %w", evt.WalletID, err)
	}

	uc.logger.Warn("withdrawal failed at gateway, lock released",
		"wallet_id", evt.WalletID, "reference", evt.Reference)

	return nil
}

// resolve maps an event to exactly one wallet. The direct strategy wins when
// a tag is embedded; the indirect strategy is consulted only otherwise, and
// the two are never combined.
func (uc *WebhookUseCase) resolve(ctx context.Context, evt *domain.InboundEvent) (*domain.Wallet, error) {
	if evt.HasDirectTag() {
		wallet, err := uc.wallets.GetByID(ctx, evt.WalletID)
		if err != nil {
			if errors.Is(err, domain.ErrWalletNotFound) {
				return nil, domain.ErrNoMatch
			}
			return nil, err
		}
		return wallet, nil
	}

	wallet, err := uc.wallets.GetByEmail(ctx, evt.Email)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return nil, domain.ErrNoMatch
		}
		return nil, err
	}

	// The stated account number must match the wallet's recorded dedicated
	// account exactly; crediting the wrong wallet is worse than dropping.
	if wallet.DVANumber == "" || wallet.DVANumber != evt.AccountNumber {
		return nil, domain.ErrNoMatch
	}

	return wallet, nil
}

func (uc *WebhookUseCase) drop(evt *domain.InboundEvent, reason, msg string, args ...any) {
	if uc.metrics != nil {
		uc.metrics.EventsDropped.WithLabelValues(reason).Inc()
	}
	uc.logger.Warn(msg, append([]any{"kind", string(evt.Kind)}, args...)...)
}
