package gateway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"

	"github.com/kudipay/kudipay/internal/domain"
)

// SignatureHeader carries the gateway's HMAC signature of the request body.
const SignatureHeader = "X-Paystack-Signature"

// Verifier authenticates webhook deliveries. It operates on the exact raw
// bytes as received; there is deliberately no entry point that accepts a
// parsed payload, since re-serialization would invalidate the signature.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the shared gateway secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks the hex-encoded HMAC-SHA512 signature over body.
// The comparison does not short-circuit on the first differing byte.
func (v *Verifier) Verify(body []byte, signature string) error {
	if signature == "" {
		return domain.ErrMissingSignature
	}

	claimed, err := hex.DecodeString(signature)
	if err != nil {
		return domain.ErrInvalidSignature
	}

	mac := hmac.New(sha512.New, v.secret)
	mac.Write(body)

	if !hmac.Equal(mac.Sum(nil), claimed) {
		return domain.ErrInvalidSignature
	}

	return nil
}

// Sign computes the signature the gateway would send for body. Used by the
// test fixtures and the CLI's webhook replay helper.
func (v *Verifier) Sign(body []byte) string {
	mac := hmac.New(sha512.New, v.secret)
	mac.Write(body)

	return hex.EncodeToString(mac.Sum(nil))
}
