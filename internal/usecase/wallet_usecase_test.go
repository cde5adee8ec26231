package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/usecase"
	"github.com/kudipay/kudipay/internal/usecase/mocks"
)

func newWalletFixture(t *testing.T) (*usecase.WalletUseCase, *mocks.MockWalletRepository, *mocks.MockGatewayClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	walletRepo := mocks.NewMockWalletRepository()
	gatewayClient := mocks.NewMockGatewayClient(ctrl)
	uc := usecase.NewWalletUseCase(walletRepo, gatewayClient, mocks.NewMockIDGenerator(), "wema-bank", nil)

	return uc, walletRepo, gatewayClient
}

func TestWalletUseCase_CreateWallet(t *testing.T) {
	uc, walletRepo, _ := newWalletFixture(t)

	wallet, err := uc.CreateWallet(context.Background(), usecase.CreateWalletInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "  Ada@Example.COM ",
		Phone:     "08012345678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wallet.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", wallet.Email)
	}
	if !wallet.Balance.IsZero() {
		t.Errorf("new wallet balance = %s", wallet.Balance.String())
	}
	if walletRepo.Stored(wallet.ID) == nil {
		t.Error("wallet not persisted")
	}
}

func TestWalletUseCase_CreateWallet_Validation(t *testing.T) {
	uc, _, _ := newWalletFixture(t)

	tests := []struct {
		name  string
		input usecase.CreateWalletInput
	}{
		{name: "missing name", input: usecase.CreateWalletInput{Email: "a@b.c"}},
		{name: "bad email", input: usecase.CreateWalletInput{FirstName: "Ada", LastName: "Lovelace", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.CreateWallet(context.Background(), tt.input); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestWalletUseCase_CreateWallet_EmailTaken(t *testing.T) {
	uc, walletRepo, _ := newWalletFixture(t)
	walletRepo.Seed(&domain.Wallet{ID: "w1", Email: "ada@example.com"})

	_, err := uc.CreateWallet(context.Background(), usecase.CreateWalletInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestWalletUseCase_LinkRecipient(t *testing.T) {
	uc, walletRepo, gatewayClient := newWalletFixture(t)
	walletRepo.Seed(&domain.Wallet{ID: "w1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"})

	gatewayClient.EXPECT().
		CreateRecipient(gomock.Any(), "Ada Lovelace", "058", "0001234567", "NGN").
		Return("RCP_t0k3n", nil)

	wallet, err := uc.LinkRecipient(context.Background(), usecase.LinkRecipientInput{
		WalletID:      "w1",
		BankCode:      "058",
		AccountNumber: "0001234567",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wallet.RecipientCode != "RCP_t0k3n" {
		t.Errorf("recipient code = %q", wallet.RecipientCode)
	}
	if got := walletRepo.Stored("w1").RecipientCode; got != "RCP_t0k3n" {
		t.Errorf("persisted recipient code = %q", got)
	}
}

func TestWalletUseCase_LinkRecipient_Validation(t *testing.T) {
	uc, walletRepo, _ := newWalletFixture(t)
	walletRepo.Seed(&domain.Wallet{ID: "w1", Email: "ada@example.com"})

	tests := []struct {
		name  string
		input usecase.LinkRecipientInput
	}{
		{name: "bad bank code", input: usecase.LinkRecipientInput{WalletID: "w1", BankCode: "abc", AccountNumber: "0001234567"}},
		{name: "short account number", input: usecase.LinkRecipientInput{WalletID: "w1", BankCode: "058", AccountNumber: "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.LinkRecipient(context.Background(), tt.input); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestWalletUseCase_LinkRecipient_AlreadyLinked(t *testing.T) {
	// The recipient handle is assignable once; no gateway call is made for a
	// second attempt.
	uc, walletRepo, _ := newWalletFixture(t)
	walletRepo.Seed(&domain.Wallet{ID: "w1", Email: "ada@example.com", RecipientCode: "RCP_old"})

	_, err := uc.LinkRecipient(context.Background(), usecase.LinkRecipientInput{
		WalletID:      "w1",
		BankCode:      "058",
		AccountNumber: "0001234567",
	})
	if !errors.Is(err, domain.ErrRecipientExists) {
		t.Fatalf("got %v, want ErrRecipientExists", err)
	}
}

func TestWalletUseCase_RequestDedicatedAccount(t *testing.T) {
	uc, walletRepo, gatewayClient := newWalletFixture(t)
	walletRepo.Seed(&domain.Wallet{ID: "w1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"})

	gatewayClient.EXPECT().
		AssignDedicatedAccount(gomock.Any(), gomock.Any(), "wema-bank").
		Return(nil)

	if err := uc.RequestDedicatedAccount(context.Background(), "w1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWalletUseCase_RequestDedicatedAccount_AlreadyAssigned(t *testing.T) {
	uc, walletRepo, _ := newWalletFixture(t)
	walletRepo.Seed(&domain.Wallet{ID: "w1", Email: "ada@example.com", DVANumber: "9876543210"})

	err := uc.RequestDedicatedAccount(context.Background(), "w1", "")
	if !errors.Is(err, domain.ErrDedicatedAccountExists) {
		t.Fatalf("got %v, want ErrDedicatedAccountExists", err)
	}
}

func TestWalletUseCase_InitiateDeposit(t *testing.T) {
	uc, walletRepo, gatewayClient := newWalletFixture(t)
	walletRepo.Seed(&domain.Wallet{ID: "w1", Email: "ada@example.com"})

	gatewayClient.EXPECT().
		InitializeCharge(gomock.Any(), "ada@example.com", int64(500000), "w1").
		Return("https://checkout.paystack.com/abc123", nil)

	url, err := uc.InitiateDeposit(context.Background(), "w1", decimal.NewFromInt(5000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://checkout.paystack.com/abc123" {
		t.Errorf("url = %q", url)
	}
}

func TestWalletUseCase_InitiateDeposit_InvalidAmount(t *testing.T) {
	uc, walletRepo, _ := newWalletFixture(t)
	walletRepo.Seed(&domain.Wallet{ID: "w1", Email: "ada@example.com"})

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5), decimal.RequireFromString("1.001")} {
		if _, err := uc.InitiateDeposit(context.Background(), "w1", amount); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("amount %s: got %v, want ErrInvalidAmount", amount.String(), err)
		}
	}
}
