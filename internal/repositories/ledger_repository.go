package repositories

import (
	"context"
	"time"

	"fluidit/internal/models"
)

// DailyUsage aggregates a wallet's same-day activity. Count covers every
// pending or completed transaction the user sent today; AmountByType holds
// the per-type sums over the same set.
type DailyUsage struct {
	Count        int64
	AmountByType map[string]float64
}

// TypeTotal is one row of a grouped transaction aggregate. Outgoing is true
// for rows where the user was the sender, so a payment the user received and
// a payment they made never land in the same bucket.
type TypeTotal struct {
	Type     string
	Outgoing bool
	Count    int64
	Total    float64
	Fees     float64
}

// TransactionFilter narrows range queries for export and reporting.
type TransactionFilter struct {
	UserID uint
	From   time.Time
	To     time.Time
	Type   string // empty means all types
}

// LedgerRepository persists wallets and their immutable transaction records.
// Debit and Credit are single conditional UPDATE statements so the balance
// check and the mutation cannot be separated by a concurrent writer.
type LedgerRepository interface {
	CreateWallet(wallet *models.Wallet) error
	GetWalletByUserID(userID uint) (*models.Wallet, error)
	GetWalletByWalletID(walletID string) (*models.Wallet, error)
	UpdateWalletStatus(walletID uint, status, reason string) error

	// DebitWallet subtracts amount only when the wallet is active and holds
	// at least amount. Returns ErrInsufficientFunds, ErrWalletLocked or
	// ErrNotFound when the guarded update touches no row.
	DebitWallet(id uint, amount float64) error
	// CreditWallet adds amount to an active wallet.
	CreditWallet(id uint, amount float64) error

	CreateTransaction(tx *models.Transaction) error
	GetTransactionByReference(reference string) (*models.Transaction, error)
	// TransitionTransactionStatus moves a record from one status to another,
	// failing when the record is no longer in the expected status.
	TransitionTransactionStatus(id uint, from, to string) error

	GetUserTransactions(userID uint, limit, offset int) ([]models.Transaction, int64, error)
	GetTransactionsInRange(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
	// GetDailyUsage reads the sender's pending and completed activity since
	// the given instant. Always a fresh query, never served from cache.
	GetDailyUsage(ctx context.Context, senderID uint, since time.Time) (*DailyUsage, error)
	GetTypeTotals(ctx context.Context, userID uint, from, to time.Time) ([]TypeTotal, error)

	// ExecuteInTransaction runs fn against a repository bound to one database
	// transaction; any error rolls the whole unit back.
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
