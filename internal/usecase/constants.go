package usecase

import "time"

const (
	// DefaultCurrency is the only settlement currency the ledger supports.
	DefaultCurrency = "NGN"

	// IdempotencyKeyTTL is how long HTTP idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
