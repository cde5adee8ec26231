package gateway_test

import (
	"errors"
	"testing"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/gateway"
)

func TestVerifier_Verify(t *testing.T) {
	secret := "sk_test_0123456789"
	body := []byte(`{"event":"charge.success","data":{"amount":500000,"reference":"ref-1"}}`)

	v := gateway.NewVerifier(secret)
	valid := v.Sign(body)

	tests := []struct {
		name      string
		body      []byte
		signature string
		errorType error
	}{
		{
			name:      "valid signature",
			body:      body,
			signature: valid,
		},
		{
			name:      "missing signature",
			body:      body,
			signature: "",
			errorType: domain.ErrMissingSignature,
		},
		{
			name:      "non-hex signature",
			body:      body,
			signature: "not-hex",
			errorType: domain.ErrInvalidSignature,
		},
		{
			name:      "signature from another secret",
			body:      body,
			signature: gateway.NewVerifier("sk_test_other").Sign(body),
			errorType: domain.ErrInvalidSignature,
		},
		{
			name: "body altered after signing",
			// One byte changed in the amount field.
			body:      []byte(`{"event":"charge.success","data":{"amount":500001,"reference":"ref-1"}}`),
			signature: valid,
			errorType: domain.ErrInvalidSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(tt.body, tt.signature)
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
