package validation

import "regexp"

// Wallet IDs look like FLD20260001: the FLD prefix followed by 8 to 12
// upper-case alphanumerics.
var walletIDRegex = regexp.MustCompile(`^FLD[A-Z0-9]{8,12}$`)

// IsValidWalletID reports whether s is a well-formed wallet identifier.
func IsValidWalletID(s string) bool {
	return walletIDRegex.MatchString(s)
}

// WalletID validates a wallet identifier field.
func (v *Validator) WalletID(field, walletID string) {
	v.Check(IsValidWalletID(walletID), field, "must be a valid wallet ID")
}
