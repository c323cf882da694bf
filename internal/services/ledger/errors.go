package ledger

import "errors"

// Service errors. Domain failures that map to HTTP statuses live in
// internal/errors; these cover internal engine states.
var (
	ErrSelfTransfer      = errors.New("cannot transfer to your own wallet")
	ErrTransactionFailed = errors.New("transaction failed")
)
