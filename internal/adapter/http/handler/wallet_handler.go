package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kudipay/kudipay/internal/adapter/http/dto"
	"github.com/kudipay/kudipay/internal/adapter/http/middleware"
	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/usecase"
)

// WalletService defines the wallet behavior needed by WalletHandler.
type WalletService interface {
	CreateWallet(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id string) (*domain.Wallet, error)
	LinkRecipient(ctx context.Context, input usecase.LinkRecipientInput) (*domain.Wallet, error)
	RequestDedicatedAccount(ctx context.Context, walletID, preferredBank string) error
	InitiateDeposit(ctx context.Context, walletID string, amount decimal.Decimal) (string, error)
}

// WithdrawService defines the withdrawal behavior needed by WalletHandler.
type WithdrawService interface {
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*usecase.WithdrawResult, error)
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC   WalletService
	withdrawUC WithdrawService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService, withdrawUC WithdrawService) *WalletHandler {
	return &WalletHandler{
		walletUC:   walletUC,
		withdrawUC: withdrawUC,
	}
}

// Create creates a new wallet.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.walletUC.CreateWallet(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.WalletFromDomain(wallet))
}

// Me returns the authenticated caller's wallet.
func (h *WalletHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	wallet, err := h.walletUC.GetWallet(r.Context(), claims.WalletID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// LinkRecipient links the caller's payout bank account.
func (h *WalletHandler) LinkRecipient(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.LinkRecipientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.walletUC.LinkRecipient(r.Context(), req.ToUseCaseInput(claims.WalletID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to link recipient", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// RequestDedicatedAccount requests a dedicated virtual account for the
// caller. The assignment arrives later via webhook.
func (h *WalletHandler) RequestDedicatedAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.DedicatedAccountRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	if err := h.walletUC.RequestDedicatedAccount(r.Context(), claims.WalletID, req.PreferredBank); err != nil {
		writeError(w, mapDomainError(err), "failed to request dedicated account", err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, dto.DedicatedAccountResponse{Status: "pending"})
}

// Deposit opens a gateway charge session for the caller.
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	url, err := h.walletUC.InitiateDeposit(r.Context(), claims.WalletID, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to initiate deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositResponse{AuthorizationURL: url})
}

// Withdraw initiates a withdrawal to the caller's linked bank account.
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.withdrawUC.Withdraw(r.Context(), usecase.WithdrawInput{
		WalletID: claims.WalletID,
		Amount:   req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "withdrawal not accepted", err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, dto.WithdrawFromResult(result))
}
