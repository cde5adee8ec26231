package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kudipay/kudipay/internal/domain"
)

const pgErrUniqueViolation = "23505"

// WalletRepository implements usecase.WalletRepository on Postgres.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

const walletColumns = `
	id, email, first_name, last_name, phone, balance,
	recipient_code, dva_number, dva_bank, dva_account_name,
	withdrawing, withdrawing_since, created_at, updated_at`

// Create inserts a new wallet.
func (r *WalletRepository) Create(ctx context.Context, w *domain.Wallet) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wallets (
			id, email, first_name, last_name, phone, balance,
			recipient_code, dva_number, dva_bank, dva_account_name,
			withdrawing, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6,
			NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''),
			false, $11, $12)`,
		w.ID, w.Email, w.FirstName, w.LastName, w.Phone, decimalToNumeric(w.Balance),
		w.RecipientCode, w.DVANumber, w.DVABank, w.DVAAccountName,
		timeToPgTimestamptz(w.CreatedAt), timeToPgTimestamptz(w.UpdatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrEmailTaken
		}
		return err
	}

	return nil
}

// GetByID retrieves a wallet by primary key.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE id = $1`, id)
	return scanWallet(row)
}

// GetByEmail retrieves a wallet by contact identity.
func (r *WalletRepository) GetByEmail(ctx context.Context, email string) (*domain.Wallet, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE email = $1`, email)
	return scanWallet(row)
}

// LinkRecipient records the gateway recipient handle, exactly once.
// The guard lives in the statement so two racing callers cannot both win.
func (r *WalletRepository) LinkRecipient(ctx context.Context, id, recipientCode string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE wallets
		SET recipient_code = $2, updated_at = now()
		WHERE id = $1 AND recipient_code IS NULL`,
		id, recipientCode,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.assignConflict(ctx, id, domain.ErrRecipientExists)
	}

	return nil
}

// AssignDedicatedAccount records the gateway-issued dedicated account,
// exactly once.
func (r *WalletRepository) AssignDedicatedAccount(ctx context.Context, id, number, bankName, accountName string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE wallets
		SET dva_number = $2, dva_bank = NULLIF($3, ''), dva_account_name = NULLIF($4, ''),
		    updated_at = now()
		WHERE id = $1 AND dva_number IS NULL`,
		id, number, bankName, accountName,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.assignConflict(ctx, id, domain.ErrDedicatedAccountExists)
	}

	return nil
}

// assignConflict distinguishes "already assigned" from "no such wallet"
// after a zero-row conditional update.
func (r *WalletRepository) assignConflict(ctx context.Context, id string, conflict error) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrWalletNotFound
	}

	return conflict
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWallet(row rowScanner) (*domain.Wallet, error) {
	var (
		w                              domain.Wallet
		balance                        pgtype.Numeric
		recipient, number, bank, name  pgtype.Text
		withdrawingSince               pgtype.Timestamptz
		createdAt, updatedAt           pgtype.Timestamptz
	)

	err := row.Scan(
		&w.ID, &w.Email, &w.FirstName, &w.LastName, &w.Phone, &balance,
		&recipient, &number, &bank, &name,
		&w.Withdrawing, &withdrawingSince, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}

	w.Balance = numericToDecimal(balance)
	w.RecipientCode = recipient.String
	w.DVANumber = number.String
	w.DVABank = bank.String
	w.DVAAccountName = name.String
	if withdrawingSince.Valid {
		t := withdrawingSince.Time
		w.WithdrawingSince = &t
	}
	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return &w, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
