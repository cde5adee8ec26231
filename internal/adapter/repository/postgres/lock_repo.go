package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LockRepository implements usecase.WithdrawalLockRepository on the wallet
// row's withdrawal flag. Every operation is a single conditional statement,
// never a read followed by a separate write.
type LockRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewLockRepository creates a new LockRepository.
func NewLockRepository(pool *pgxpool.Pool, logger *slog.Logger) *LockRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &LockRepository{pool: pool, logger: logger}
}

// TryAcquire test-and-sets the withdrawal flag. The WHERE clause makes the
// check and the write one atomic statement, so of any number of concurrent
// callers exactly one sees an affected row.
func (r *LockRepository) TryAcquire(ctx context.Context, walletID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE wallets
		SET withdrawing = true, withdrawing_since = now(), updated_at = now()
		WHERE id = $1 AND NOT withdrawing`,
		walletID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// Release clears the flag. Releasing an already-released lock affects zero
// rows and is not an error; the confirming webhook and the failure handler
// may both get here.
func (r *LockRepository) Release(ctx context.Context, walletID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE wallets
		SET withdrawing = false, withdrawing_since = NULL, updated_at = now()
		WHERE id = $1 AND withdrawing`,
		walletID,
	)

	return err
}

// ReleaseStale force-releases locks held longer than olderThan. Backs the
// operational sweep for withdrawals whose gateway outcome never arrived.
func (r *LockRepository) ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE wallets
		SET withdrawing = false, withdrawing_since = NULL, updated_at = now()
		WHERE withdrawing AND withdrawing_since < now() - make_interval(secs => $1)`,
		olderThan.Seconds(),
	)
	if err != nil {
		return 0, err
	}

	if n := tag.RowsAffected(); n > 0 {
		r.logger.Warn("released stale withdrawal locks", "count", n)
		return n, nil
	}

	return 0, nil
}
