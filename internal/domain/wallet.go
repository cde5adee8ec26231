package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet represents one holder's account. The balance is denominated in
// naira (major units); every gateway amount is converted before it gets here.
type Wallet struct {
	ID               string
	Email            string
	FirstName        string
	LastName         string
	Phone            string
	Balance          decimal.Decimal
	RecipientCode    string
	DVANumber        string
	DVABank          string
	DVAAccountName   string
	Withdrawing      bool
	WithdrawingSince *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName returns the holder name used for gateway recipient creation.
func (w *Wallet) FullName() string {
	return w.FirstName + " " + w.LastName
}

// HasRecipient reports whether a transfer recipient has been linked.
func (w *Wallet) HasRecipient() bool {
	return w.RecipientCode != ""
}

// HasDedicatedAccount reports whether the gateway has assigned a
// dedicated account number to this wallet.
func (w *Wallet) HasDedicatedAccount() bool {
	return w.DVANumber != ""
}

// ValidateWithdrawal is the advisory pre-flight check for a withdrawal.
// The authoritative double-spend guard is the withdrawal lock, not this.
func (w *Wallet) ValidateWithdrawal(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !w.HasRecipient() {
		return ErrNoRecipient
	}
	if w.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	return nil
}
