package dto

import (
	"github.com/shopspring/decimal"

	"github.com/kudipay/kudipay/internal/usecase"
)

// CreateWalletRequest represents a request to create a wallet.
type CreateWalletRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWalletRequest) ToUseCaseInput() usecase.CreateWalletInput {
	return usecase.CreateWalletInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

// LinkRecipientRequest represents a request to link a payout bank account.
type LinkRecipientRequest struct {
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	Currency      string `json:"currency,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *LinkRecipientRequest) ToUseCaseInput(walletID string) usecase.LinkRecipientInput {
	return usecase.LinkRecipientInput{
		WalletID:      walletID,
		BankCode:      r.BankCode,
		AccountNumber: r.AccountNumber,
		Currency:      r.Currency,
	}
}

// DedicatedAccountRequest represents a request for a dedicated account.
type DedicatedAccountRequest struct {
	PreferredBank string `json:"preferred_bank,omitempty"`
}

// DepositRequest represents a request to open a charge session.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// WithdrawRequest represents a withdrawal request.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
