package ledger

import "time"

// Default configuration values
const (
	DefaultMaxTopUpAmount    = 50000.0
	DefaultMaxTransferAmount = 1000000.0
	DefaultMinAmount         = 0.01
)

// Idempotency keys are held long enough to outlive any sane client retry.
const (
	idempotencyKeyPrefix = "idem:transfer:"
	idempotencyKeyTTL    = 24 * time.Hour
)

// Reference prefixes by transaction type.
const (
	ReferencePrefixPayment    = "TXN"
	ReferencePrefixTopup      = "TOP"
	ReferencePrefixWithdrawal = "WDL"
)
