package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository. It is the only code
// that writes wallet balances.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool, retrier *Retrier) *LedgerRepository {
	return &LedgerRepository{pool: pool, retrier: retrier}
}

// ApplyDelta applies a signed balance delta exactly once per reference.
//
// The dedup-key insert and the balance update share one transaction: a
// replayed reference is detected before any balance change, and a failed
// update (wallet gone) rolls the key back so a later redelivery can still
// apply. The atomicity holds across process instances because it is the
// database transaction, not an in-process lock.
func (r *LedgerRepository) ApplyDelta(ctx context.Context, input usecase.ApplyDeltaInput) (usecase.ApplyDeltaResult, error) {
	var result usecase.ApplyDeltaResult

	operation := func() error {
		var err error
		result, err = r.applyDeltaOnce(ctx, input)
		return err
	}

	if r.retrier != nil {
		if err := r.retrier.Retry(ctx, operation); err != nil {
			return "", err
		}
		return result, nil
	}

	if err := operation(); err != nil {
		return "", err
	}

	return result, nil
}

func (r *LedgerRepository) applyDeltaOnce(ctx context.Context, input usecase.ApplyDeltaInput) (usecase.ApplyDeltaResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	tag, err := tx.Exec(ctx, `
		INSERT INTO processed_events (reference, wallet_id, amount, applied_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (reference) DO NOTHING`,
		input.Reference, input.WalletID, decimalToNumeric(input.Amount), timeToPgTimestamptz(now),
	)
	if err != nil {
		return "", err
	}
	if tag.RowsAffected() == 0 {
		return usecase.DeltaAlreadyApplied, nil
	}

	tag, err = tx.Exec(ctx, `
		UPDATE wallets
		SET balance = balance + $2,
		    withdrawing = CASE WHEN $3 THEN false ELSE withdrawing END,
		    withdrawing_since = CASE WHEN $3 THEN NULL ELSE withdrawing_since END,
		    updated_at = $4
		WHERE id = $1`,
		input.WalletID, decimalToNumeric(input.Amount), input.ClearWithdrawal, timeToPgTimestamptz(now),
	)
	if err != nil {
		return "", err
	}
	if tag.RowsAffected() == 0 {
		return "", domain.ErrWalletNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	return usecase.DeltaApplied, nil
}
