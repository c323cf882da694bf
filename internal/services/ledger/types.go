package ledger

import (
	"context"
	"time"

	"fluidit/internal/models"
)

// Config holds ledger engine settings.
type Config struct {
	MaxTopUpAmount    float64 // per-transaction top-up ceiling
	MaxTransferAmount float64 // per-transaction transfer ceiling
	MinAmount         float64 // smallest accepted amount
}

// Result is the outcome of a balance-mutating operation.
type Result struct {
	Transaction *models.Transaction `json:"transaction"`
	NewBalance  float64             `json:"newBalance"`
}

// LimitGuard checks a candidate transaction against daily caps.
type LimitGuard interface {
	Check(ctx context.Context, wallet *models.Wallet, amount float64, txType string, now time.Time) error
}

// FeeCalculator computes the fee for a transaction.
type FeeCalculator interface {
	Calculate(amount float64, txType string) float64
}

// Notifier delivers best-effort notifications after money movement. All
// methods must return quickly and never surface failures to the caller.
type Notifier interface {
	TransferCompleted(ctx context.Context, sender, recipient *models.User, tx *models.Transaction, senderBalance float64)
	TopUpCompleted(ctx context.Context, user *models.User, tx *models.Transaction, newBalance float64)
	WithdrawalCompleted(ctx context.Context, user *models.User, tx *models.Transaction, newBalance float64)
}

// Charger charges an external funding source before a top-up is credited.
type Charger interface {
	Charge(ctx context.Context, cardToken string, amount float64, description string) error
}

// CacheOperator is the slice of the cache the ledger needs.
type CacheOperator interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	SetWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// MetricsCollector records ledger activity. Implementations must be cheap
// and non-blocking.
type MetricsCollector interface {
	RecordTransaction(txType string, amount float64)
	RecordError(operation, errType string)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTransaction(string, float64) {}
func (NoopMetricsCollector) RecordError(string, string)        {}
