// Package limits enforces per-wallet daily transaction caps.
package limits

import (
	"context"
	"fmt"
	"time"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"
	"fluidit/internal/repositories"
)

// UsageReader reads a sender's same-day activity from the ledger store.
type UsageReader interface {
	GetDailyUsage(ctx context.Context, senderID uint, since time.Time) (*repositories.DailyUsage, error)
}

// Guard evaluates candidate transactions against daily caps. Every check
// queries the store fresh; totals are never cached, so a decision can never
// under-count activity committed moments earlier.
type Guard struct {
	usage UsageReader
}

// NewGuard creates a limit guard backed by the given usage reader.
func NewGuard(usage UsageReader) *Guard {
	if usage == nil {
		panic("usage reader is required")
	}
	return &Guard{usage: usage}
}

// StartOfDay returns midnight UTC of the day containing now. All daily
// windows are computed in UTC, the service timezone.
func StartOfDay(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Check rejects the candidate transaction when the wallet has exhausted its
// daily transaction count, or when the proposed amount would push the
// same-type daily total past its cap. Pending transactions count against
// both limits.
func (g *Guard) Check(ctx context.Context, wallet *models.Wallet, amount float64, txType string, now time.Time) error {
	usage, err := g.usage.GetDailyUsage(ctx, wallet.UserID, StartOfDay(now))
	if err != nil {
		return fmt.Errorf("failed to check daily limits: %w", err)
	}

	if usage.Count >= int64(wallet.MaxDailyTxCount) {
		return apperr.ErrLimitExceeded.WithMessage(
			"daily transaction limit reached, please try again tomorrow")
	}

	if cap := g.dailyCap(wallet, txType); cap > 0 && usage.AmountByType[txType]+amount > cap {
		return apperr.ErrLimitExceeded.WithMessage(
			fmt.Sprintf("daily %s limit of %.2f would be exceeded", txType, cap))
	}
	return nil
}

// dailyCap picks the amount cap for a type. Withdrawals have no amount cap,
// only the transaction count applies; other uncapped types fall back to the
// payment cap.
func (g *Guard) dailyCap(wallet *models.Wallet, txType string) float64 {
	switch txType {
	case models.TransactionTypeTopup:
		return wallet.MaxDailyTopup
	case models.TransactionTypeWithdrawal:
		return 0
	default:
		return wallet.MaxDailyPayment
	}
}
