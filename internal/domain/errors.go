package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound         = errors.New("wallet not found")
	ErrEmailTaken             = errors.New("email already registered")
	ErrRecipientExists        = errors.New("transfer recipient already linked")
	ErrDedicatedAccountExists = errors.New("dedicated account already assigned")
	ErrNoRecipient            = errors.New("no transfer recipient linked")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrWithdrawalInProgress   = errors.New("withdrawal already in progress")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidInput           = errors.New("invalid input")

	// Webhook errors
	ErrMissingSignature = errors.New("missing webhook signature")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedEvent   = errors.New("malformed event payload")
	ErrNoMatch          = errors.New("event matches no wallet")

	// Gateway errors
	ErrGatewayRejected    = errors.New("gateway rejected the request")
	ErrGatewayUnavailable = errors.New("gateway unavailable")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")

	// Worker errors
	ErrQueueFull = errors.New("task queue full")
)
