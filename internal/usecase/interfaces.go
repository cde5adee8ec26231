package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kudipay/kudipay/internal/domain"
)

// WalletRepository is the Account Directory's data surface. This core never
// mutates identity fields; balance and the withdrawal flag are mutated only
// through LedgerRepository and WithdrawalLockRepository.
type WalletRepository interface {
	Create(ctx context.Context, w *domain.Wallet) error
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
	GetByEmail(ctx context.Context, email string) (*domain.Wallet, error)
	// LinkRecipient records the gateway recipient handle. Assign-once: a
	// second attempt fails with domain.ErrRecipientExists.
	LinkRecipient(ctx context.Context, id, recipientCode string) error
	// AssignDedicatedAccount records the gateway-issued account number.
	// Assign-once: a second attempt fails with domain.ErrDedicatedAccountExists.
	AssignDedicatedAccount(ctx context.Context, id, number, bankName, accountName string) error
}

// ApplyDeltaInput is one atomic, idempotent balance mutation.
type ApplyDeltaInput struct {
	WalletID string
	// Amount is signed and in major units.
	Amount decimal.Decimal
	// Reference is the dedup key; a consumed reference makes the whole
	// mutation a no-op.
	Reference string
	// ClearWithdrawal also clears the withdrawal-in-progress flag, in the
	// same atomic step as the balance change.
	ClearWithdrawal bool
}

// ApplyDeltaResult reports the outcome of an idempotent mutation.
type ApplyDeltaResult string

const (
	DeltaApplied        ApplyDeltaResult = "applied"
	DeltaAlreadyApplied ApplyDeltaResult = "already-applied"
)

// LedgerRepository owns all balance mutation. The dedup-key record and the
// balance update are durable in a single atomic step, across process
// instances.
type LedgerRepository interface {
	ApplyDelta(ctx context.Context, input ApplyDeltaInput) (ApplyDeltaResult, error)
}

// WithdrawalLockRepository serializes withdrawals per wallet.
type WithdrawalLockRepository interface {
	// TryAcquire is a single atomic test-and-set on the withdrawal flag.
	// Exactly one concurrent caller observes true.
	TryAcquire(ctx context.Context, walletID string) (bool, error)
	// Release clears the flag. Idempotent: releasing a released lock is a
	// no-op, since both the confirming webhook and the failure path may call it.
	Release(ctx context.Context, walletID string) error
	// ReleaseStale force-releases locks held longer than olderThan and
	// returns how many were cleared.
	ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

// GatewayClient is the outbound payment-gateway collaborator.
type GatewayClient interface {
	CreateRecipient(ctx context.Context, name, bankCode, accountNumber, currency string) (string, error)
	InitiateTransfer(ctx context.Context, recipientCode string, amountMinor int64, reference string) error
	AssignDedicatedAccount(ctx context.Context, w *domain.Wallet, preferredBank string) error
	InitializeCharge(ctx context.Context, email string, amountMinor int64, walletID string) (string, error)
}

// TaskQueue accepts post-acknowledgement work. Enqueue fails with
// domain.ErrQueueFull rather than blocking the webhook response.
type TaskQueue interface {
	Enqueue(name string, fn func(ctx context.Context) error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage for the HTTP surface.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
