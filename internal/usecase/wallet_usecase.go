package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kudipay/kudipay/internal/domain"
)

var (
	bankCodeRe      = regexp.MustCompile(`^\d{1,6}$`)
	accountNumberRe = regexp.MustCompile(`^\d{10}$`)
)

// WalletUseCase handles wallet lifecycle and gateway resource linking.
type WalletUseCase struct {
	wallets       WalletRepository
	gateway       GatewayClient
	idGen         IDGenerator
	preferredBank string
	logger        *slog.Logger
}

// NewWalletUseCase creates a new WalletUseCase. preferredBank is the default
// issuing bank requested for dedicated accounts.
func NewWalletUseCase(
	wallets WalletRepository,
	gw GatewayClient,
	idGen IDGenerator,
	preferredBank string,
	logger *slog.Logger,
) *WalletUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &WalletUseCase{
		wallets:       wallets,
		gateway:       gw,
		idGen:         idGen,
		preferredBank: preferredBank,
		logger:        logger,
	}
}

// CreateWalletInput represents input for creating a wallet.
type CreateWalletInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (in *CreateWalletInput) validate() error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}

	return nil
}

// CreateWallet registers a new wallet with a zero balance. Credentials are
// owned by the account directory; none are issued here.
func (uc *WalletUseCase) CreateWallet(ctx context.Context, input CreateWalletInput) (*domain.Wallet, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:        uc.idGen.Generate(),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Phone:     strings.TrimSpace(input.Phone),
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.wallets.Create(ctx, wallet); err != nil {
		return nil, err
	}

	uc.logger.Info("wallet created", "wallet_id", wallet.ID)

	return wallet, nil
}

// GetWallet retrieves a wallet by ID.
func (uc *WalletUseCase) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	return uc.wallets.GetByID(ctx, id)
}

// LinkRecipientInput represents input for linking a payout bank account.
type LinkRecipientInput struct {
	WalletID      string
	BankCode      string
	AccountNumber string
	Currency      string
}

// LinkRecipient registers the wallet's payout account with the gateway and
// records the returned recipient handle. The handle is assignable exactly
// once; a second attempt is rejected, not overwritten.
func (uc *WalletUseCase) LinkRecipient(ctx context.Context, input LinkRecipientInput) (*domain.Wallet, error) {
	if !bankCodeRe.MatchString(input.BankCode) {
		return nil, fmt.Errorf("%w: bank code must be 1-6 digits", domain.ErrInvalidInput)
	}
	if !accountNumberRe.MatchString(input.AccountNumber) {
		return nil, fmt.Errorf("%w: account number must be 10 digits", domain.ErrInvalidInput)
	}

	currency := input.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	wallet, err := uc.wallets.GetByID(ctx, input.WalletID)
	if err != nil {
		return nil, err
	}
	if wallet.HasRecipient() {
		return nil, domain.ErrRecipientExists
	}

	code, err := uc.gateway.CreateRecipient(ctx, wallet.FullName(), input.BankCode, input.AccountNumber, currency)
	if err != nil {
		return nil, err
	}

	if err := uc.wallets.LinkRecipient(ctx, wallet.ID, code); err != nil {
		return nil, err
	}

	wallet.RecipientCode = code
	uc.logger.Info("transfer recipient linked", "wallet_id", wallet.ID)

	return wallet, nil
}

// RequestDedicatedAccount asks the gateway to assign a dedicated virtual
// account. The assignment lands asynchronously via the account-assigned
// webhook; this call only reports that the request is pending.
func (uc *WalletUseCase) RequestDedicatedAccount(ctx context.Context, walletID, preferredBank string) error {
	wallet, err := uc.wallets.GetByID(ctx, walletID)
	if err != nil {
		return err
	}
	if wallet.HasDedicatedAccount() {
		return domain.ErrDedicatedAccountExists
	}

	if preferredBank == "" {
		preferredBank = uc.preferredBank
	}

	if err := uc.gateway.AssignDedicatedAccount(ctx, wallet, preferredBank); err != nil {
		return err
	}

	uc.logger.Info("dedicated account requested",
		"wallet_id", wallet.ID, "preferred_bank", preferredBank)

	return nil
}

// InitiateDeposit opens a gateway charge session for the wallet and returns
// the checkout URL. The session is tagged with the wallet ID so the eventual
// credit event resolves by the direct strategy.
func (uc *WalletUseCase) InitiateDeposit(ctx context.Context, walletID string, amount decimal.Decimal) (string, error) {
	amountMinor, err := domain.MajorToMinor(amount)
	if err != nil {
		return "", err
	}
	if amountMinor <= 0 {
		return "", domain.ErrInvalidAmount
	}

	wallet, err := uc.wallets.GetByID(ctx, walletID)
	if err != nil {
		return "", err
	}

	return uc.gateway.InitializeCharge(ctx, wallet.Email, amountMinor, wallet.ID)
}
