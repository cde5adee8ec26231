package domain

import "github.com/shopspring/decimal"

// The gateway denominates every amount in kobo (minor units); the ledger
// stores naira (major units).
var minorPerMajor = decimal.NewFromInt(100)

// MinorToMajor converts a gateway minor-unit amount to major units.
func MinorToMajor(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(minorPerMajor)
}

// MajorToMinor converts a major-unit amount to the gateway's minor units.
// Amounts with sub-kobo precision are rejected rather than rounded.
func MajorToMinor(major decimal.Decimal) (int64, error) {
	minor := major.Mul(minorPerMajor)
	if !minor.IsInteger() {
		return 0, ErrInvalidAmount
	}

	return minor.IntPart(), nil
}
