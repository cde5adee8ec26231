package domain

import "github.com/shopspring/decimal"

// EventKind enumerates the gateway notifications this service acts on.
type EventKind string

const (
	EventAccountAssigned     EventKind = "account-assigned"
	EventFundsReceived       EventKind = "funds-received"
	EventWithdrawalConfirmed EventKind = "withdrawal-confirmed"
	EventWithdrawalFailed    EventKind = "withdrawal-failed"
	EventUnrecognized        EventKind = "unrecognized"
)

// InboundEvent is a classified, signature-verified gateway notification.
// It lives only for the duration of one delivery; only Reference outlasts it,
// as the dedup key recorded by the ledger.
type InboundEvent struct {
	Kind EventKind

	// Reference is the gateway-assigned reference for the underlying
	// transaction, used as the idempotency key where a mutation applies.
	Reference string

	// Amount in major units (naira). Zero for events without an amount.
	Amount decimal.Decimal

	// WalletID is the directly embedded correlation tag, when this service
	// tagged the originating action. Empty for bank-transfer credits.
	WalletID string

	// Indirect correlation payload: the customer's email plus the dedicated
	// account number the gateway says received the funds.
	Email         string
	AccountNumber string

	// Dedicated-account assignment details.
	BankName    string
	AccountName string
}

// HasDirectTag reports whether the direct correlation strategy applies.
func (e *InboundEvent) HasDirectTag() bool {
	return e.WalletID != ""
}
