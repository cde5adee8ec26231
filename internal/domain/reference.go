package domain

import "strings"

const withdrawalRefPrefix = "wd"

// WithdrawalReference builds the transfer reference sent to the gateway when
// a withdrawal is initiated. The wallet ID is embedded so the confirming
// event can be correlated directly, and the token makes the reference unique
// per attempt.
func WithdrawalReference(walletID, token string) string {
	return withdrawalRefPrefix + "-" + walletID + "-" + token
}

// WalletFromWithdrawalReference extracts the embedded wallet ID from a
// transfer reference. Returns false for references this service did not
// create.
func WalletFromWithdrawalReference(ref string) (string, bool) {
	parts := strings.Split(ref, "-")
	if len(parts) != 3 || parts[0] != withdrawalRefPrefix {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
