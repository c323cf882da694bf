package validation

const (
	// Amount limits
	MinTransactionAmount = 0.01
	MaxTransactionAmount = 1000000.00
	MaxTopUpAmount       = 50000.00

	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxNameLength     = 100
	MaxUsernameLength = 30
	MaxNoteLength     = 500
)
