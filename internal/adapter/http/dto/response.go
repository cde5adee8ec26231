package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/usecase"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WalletResponse represents a wallet.
type WalletResponse struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Phone          string          `json:"phone,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	RecipientCode  string          `json:"recipient_code,omitempty"`
	DVANumber      string          `json:"dva_number,omitempty"`
	DVABank        string          `json:"dva_bank,omitempty"`
	DVAAccountName string          `json:"dva_account_name,omitempty"`
	Withdrawing    bool            `json:"withdrawing"`
	CreatedAt      time.Time       `json:"created_at"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:             w.ID,
		Email:          w.Email,
		FirstName:      w.FirstName,
		LastName:       w.LastName,
		Phone:          w.Phone,
		Balance:        w.Balance,
		RecipientCode:  w.RecipientCode,
		DVANumber:      w.DVANumber,
		DVABank:        w.DVABank,
		DVAAccountName: w.DVAAccountName,
		Withdrawing:    w.Withdrawing,
		CreatedAt:      w.CreatedAt,
	}
}

// WithdrawResponse represents an accepted withdrawal awaiting confirmation.
type WithdrawResponse struct {
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
}

// WithdrawFromResult converts a usecase result to a response.
func WithdrawFromResult(r *usecase.WithdrawResult) WithdrawResponse {
	return WithdrawResponse{
		Reference: r.Reference,
		Amount:    r.Amount,
		Status:    r.Status,
	}
}

// DepositResponse carries the gateway checkout URL for a charge session.
type DepositResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

// DedicatedAccountResponse reports a pending dedicated account request.
type DedicatedAccountResponse struct {
	Status string `json:"status"`
}

// SweepResponse reports a stale-lock sweep.
type SweepResponse struct {
	Released int64 `json:"released"`
}
