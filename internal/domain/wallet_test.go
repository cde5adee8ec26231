package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kudipay/kudipay/internal/domain"
)

func TestWallet_ValidateWithdrawal(t *testing.T) {
	funded := domain.Wallet{
		Balance:       decimal.NewFromInt(1000),
		RecipientCode: "RCP_abc",
	}

	tests := []struct {
		name      string
		wallet    domain.Wallet
		amount    decimal.Decimal
		errorType error
	}{
		{
			name:   "valid",
			wallet: funded,
			amount: decimal.NewFromInt(500),
		},
		{
			name:   "exact balance",
			wallet: funded,
			amount: decimal.NewFromInt(1000),
		},
		{
			name:      "zero amount",
			wallet:    funded,
			amount:    decimal.Zero,
			errorType: domain.ErrInvalidAmount,
		},
		{
			name:      "negative amount",
			wallet:    funded,
			amount:    decimal.NewFromInt(-1),
			errorType: domain.ErrInvalidAmount,
		},
		{
			name:      "no recipient linked",
			wallet:    domain.Wallet{Balance: decimal.NewFromInt(1000)},
			amount:    decimal.NewFromInt(500),
			errorType: domain.ErrNoRecipient,
		},
		{
			name:      "insufficient balance",
			wallet:    funded,
			amount:    decimal.NewFromInt(1001),
			errorType: domain.ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wallet.ValidateWithdrawal(tt.amount)
			if tt.errorType == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.errorType) {
				t.Errorf("got %v, want %v", err, tt.errorType)
			}
		})
	}
}
