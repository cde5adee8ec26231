package gateway_test

import (
	"errors"
	"testing"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/gateway"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		errorType error
		check     func(t *testing.T, evt *domain.InboundEvent)
	}{
		{
			name: "charge with embedded wallet tag",
			payload: `{
				"event": "charge.success",
				"data": {
					"amount": 500000,
					"reference": "T685312322670591",
					"metadata": {"wallet_id": "01J8ZQWALLET"},
					"customer": {"email": "ada@example.com"}
				}
			}`,
			check: func(t *testing.T, evt *domain.InboundEvent) {
				if evt.Kind != domain.EventFundsReceived {
					t.Fatalf("kind = %s", evt.Kind)
				}
				if !evt.HasDirectTag() || evt.WalletID != "01J8ZQWALLET" {
					t.Errorf("wallet tag = %q", evt.WalletID)
				}
				if evt.Amount.String() != "5000" {
					t.Errorf("amount = %s, want 5000", evt.Amount.String())
				}
				if evt.Reference != "T685312322670591" {
					t.Errorf("reference = %q", evt.Reference)
				}
			},
		},
		{
			name: "bank transfer credit without tag",
			payload: `{
				"event": "charge.success",
				"data": {
					"amount": 200000,
					"reference": "T99",
					"metadata": {"receiver_account_number": "9876543210"},
					"customer": {"email": "ada@example.com"}
				}
			}`,
			check: func(t *testing.T, evt *domain.InboundEvent) {
				if evt.HasDirectTag() {
					t.Error("expected no direct tag")
				}
				if evt.Email != "ada@example.com" || evt.AccountNumber != "9876543210" {
					t.Errorf("indirect payload = %q %q", evt.Email, evt.AccountNumber)
				}
			},
		},
		{
			name: "charge without tag or receiver account",
			payload: `{
				"event": "charge.success",
				"data": {
					"amount": 200000,
					"reference": "T99",
					"customer": {"email": "ada@example.com"}
				}
			}`,
			errorType: domain.ErrMalformedEvent,
		},
		{
			name: "charge with non-positive amount",
			payload: `{
				"event": "charge.success",
				"data": {"amount": 0, "reference": "T99"}
			}`,
			errorType: domain.ErrMalformedEvent,
		},
		{
			name: "transfer success",
			payload: `{
				"event": "transfer.success",
				"data": {"amount": 300000, "reference": "wd-01J8ZQWALLET-01J8ZQTOKEN"}
			}`,
			check: func(t *testing.T, evt *domain.InboundEvent) {
				if evt.Kind != domain.EventWithdrawalConfirmed {
					t.Fatalf("kind = %s", evt.Kind)
				}
				if evt.WalletID != "01J8ZQWALLET" {
					t.Errorf("wallet = %q", evt.WalletID)
				}
				if evt.Amount.String() != "3000" {
					t.Errorf("amount = %s", evt.Amount.String())
				}
			},
		},
		{
			name: "transfer success with foreign reference",
			payload: `{
				"event": "transfer.success",
				"data": {"amount": 300000, "reference": "some-other-system-ref-x"}
			}`,
			errorType: domain.ErrMalformedEvent,
		},
		{
			name: "transfer failed",
			payload: `{
				"event": "transfer.failed",
				"data": {"amount": 300000, "reference": "wd-01J8ZQWALLET-01J8ZQTOKEN"}
			}`,
			check: func(t *testing.T, evt *domain.InboundEvent) {
				if evt.Kind != domain.EventWithdrawalFailed {
					t.Fatalf("kind = %s", evt.Kind)
				}
				if evt.WalletID != "01J8ZQWALLET" {
					t.Errorf("wallet = %q", evt.WalletID)
				}
			},
		},
		{
			name: "transfer reversed",
			payload: `{
				"event": "transfer.reversed",
				"data": {"amount": 300000, "reference": "wd-01J8ZQWALLET-01J8ZQTOKEN"}
			}`,
			check: func(t *testing.T, evt *domain.InboundEvent) {
				if evt.Kind != domain.EventWithdrawalFailed {
					t.Fatalf("kind = %s", evt.Kind)
				}
			},
		},
		{
			name: "dedicated account assigned",
			payload: `{
				"event": "dedicatedaccount.assign.success",
				"data": {
					"customer": {"email": "ada@example.com"},
					"dedicated_account": {
						"account_number": "9876543210",
						"account_name": "ADA LOVELACE",
						"bank": {"name": "Wema Bank"}
					}
				}
			}`,
			check: func(t *testing.T, evt *domain.InboundEvent) {
				if evt.Kind != domain.EventAccountAssigned {
					t.Fatalf("kind = %s", evt.Kind)
				}
				if evt.Email != "ada@example.com" {
					t.Errorf("email = %q", evt.Email)
				}
				if evt.AccountNumber != "9876543210" || evt.BankName != "Wema Bank" {
					t.Errorf("account = %q bank = %q", evt.AccountNumber, evt.BankName)
				}
			},
		},
		{
			name: "dedicated account assigned without customer",
			payload: `{
				"event": "dedicatedaccount.assign.success",
				"data": {"dedicated_account": {"account_number": "9876543210"}}
			}`,
			errorType: domain.ErrMalformedEvent,
		},
		{
			name:    "unrecognized event name",
			payload: `{"event": "subscription.create", "data": {}}`,
			check: func(t *testing.T, evt *domain.InboundEvent) {
				if evt.Kind != domain.EventUnrecognized {
					t.Fatalf("kind = %s", evt.Kind)
				}
			},
		},
		{
			name:      "not JSON",
			payload:   `not json at all`,
			errorType: domain.ErrMalformedEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt, err := gateway.Classify([]byte(tt.payload))
			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("got %v, want %v", err, tt.errorType)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, evt)
		})
	}
}
