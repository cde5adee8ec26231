package gateway

import (
	"encoding/json"

	"github.com/kudipay/kudipay/internal/domain"
)

// Gateway event names this service recognizes.
const (
	eventChargeSuccess    = "charge.success"
	eventTransferSuccess  = "transfer.success"
	eventTransferFailed   = "transfer.failed"
	eventTransferReversed = "transfer.reversed"
	eventDVAAssigned      = "dedicatedaccount.assign.success"
)

type webhookPayload struct {
	Event string      `json:"event"`
	Data  webhookData `json:"data"`
}

type webhookData struct {
	Amount           int64            `json:"amount"`
	Reference        string           `json:"reference"`
	Metadata         *webhookMetadata `json:"metadata,omitempty"`
	Customer         *webhookCustomer `json:"customer,omitempty"`
	DedicatedAccount *webhookDVA      `json:"dedicated_account,omitempty"`
}

type webhookMetadata struct {
	WalletID              string `json:"wallet_id"`
	ReceiverAccountNumber string `json:"receiver_account_number"`
}

type webhookCustomer struct {
	Email string `json:"email"`
}

type webhookDVA struct {
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Bank          *webhookDVABank `json:"bank,omitempty"`
}

type webhookDVABank struct {
	Name string `json:"name"`
}

// Classify turns a signature-verified payload into a typed event.
// It is a pure transformation; unknown event names classify as
// EventUnrecognized so the gateway is not forced into endless retries.
func Classify(payload []byte) (*domain.InboundEvent, error) {
	var p webhookPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, domain.ErrMalformedEvent
	}

	switch p.Event {
	case eventDVAAssigned:
		return classifyAccountAssigned(p.Data)
	case eventChargeSuccess:
		return classifyFundsReceived(p.Data)
	case eventTransferSuccess:
		return classifyWithdrawalEvent(p.Data, domain.EventWithdrawalConfirmed)
	case eventTransferFailed, eventTransferReversed:
		return classifyWithdrawalEvent(p.Data, domain.EventWithdrawalFailed)
	default:
		return &domain.InboundEvent{Kind: domain.EventUnrecognized}, nil
	}
}

func classifyAccountAssigned(d webhookData) (*domain.InboundEvent, error) {
	if d.Customer == nil || d.Customer.Email == "" {
		return nil, domain.ErrMalformedEvent
	}
	if d.DedicatedAccount == nil || d.DedicatedAccount.AccountNumber == "" {
		return nil, domain.ErrMalformedEvent
	}

	evt := &domain.InboundEvent{
		Kind:          domain.EventAccountAssigned,
		Email:         d.Customer.Email,
		AccountNumber: d.DedicatedAccount.AccountNumber,
		AccountName:   d.DedicatedAccount.AccountName,
	}
	if d.DedicatedAccount.Bank != nil {
		evt.BankName = d.DedicatedAccount.Bank.Name
	}

	return evt, nil
}

func classifyFundsReceived(d webhookData) (*domain.InboundEvent, error) {
	if d.Amount <= 0 || d.Reference == "" {
		return nil, domain.ErrMalformedEvent
	}

	evt := &domain.InboundEvent{
		Kind:      domain.EventFundsReceived,
		Reference: d.Reference,
		Amount:    domain.MinorToMajor(d.Amount),
	}

	if d.Metadata != nil && d.Metadata.WalletID != "" {
		evt.WalletID = d.Metadata.WalletID
		return evt, nil
	}

	// Bank-transfer credit into a dedicated account: correlate indirectly
	// by customer email plus the account number that received the funds.
	if d.Customer == nil || d.Customer.Email == "" ||
		d.Metadata == nil || d.Metadata.ReceiverAccountNumber == "" {
		return nil, domain.ErrMalformedEvent
	}

	evt.Email = d.Customer.Email
	evt.AccountNumber = d.Metadata.ReceiverAccountNumber

	return evt, nil
}

func classifyWithdrawalEvent(d webhookData, kind domain.EventKind) (*domain.InboundEvent, error) {
	walletID, ok := domain.WalletFromWithdrawalReference(d.Reference)
	if !ok {
		return nil, domain.ErrMalformedEvent
	}
	if kind == domain.EventWithdrawalConfirmed && d.Amount <= 0 {
		return nil, domain.ErrMalformedEvent
	}

	return &domain.InboundEvent{
		Kind:      kind,
		Reference: d.Reference,
		Amount:    domain.MinorToMajor(d.Amount),
		WalletID:  walletID,
	}, nil
}
