package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"

	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a GORM-backed ledger repository.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateWallet(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetWalletByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) GetWalletByWalletID(walletID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("wallet_id = ?", walletID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) UpdateWalletStatus(walletID uint, status, reason string) error {
	result := r.db.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{"status": status, "status_reason": reason})
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DebitWallet folds the balance check into the UPDATE itself. Two concurrent
// debits against the same wallet serialize on the row lock, and the loser
// re-evaluates the balance guard against the committed value, so the wallet
// can never be driven below zero.
func (r *ledgerRepository) DebitWallet(id uint, amount float64) error {
	result := r.db.Model(&models.Wallet{}).
		Where("id = ? AND status = ? AND balance >= ?", id, models.WalletStatusActive, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.classifyGuardMiss(id, apperr.ErrInsufficientFunds)
	}
	return nil
}

func (r *ledgerRepository) CreditWallet(id uint, amount float64) error {
	result := r.db.Model(&models.Wallet{}).
		Where("id = ? AND status = ?", id, models.WalletStatusActive).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.classifyGuardMiss(id, apperr.ErrWalletLocked)
	}
	return nil
}

// classifyGuardMiss turns a zero-row guarded update into the right domain
// error: missing wallet, locked wallet, or the fallback for a failed guard.
func (r *ledgerRepository) classifyGuardMiss(id uint, fallback error) error {
	var wallet models.Wallet
	if err := r.db.First(&wallet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("failed to inspect wallet %d: %w", id, err)
	}
	if wallet.Status != models.WalletStatusActive {
		return apperr.ErrWalletLocked
	}
	return fallback
}

func (r *ledgerRepository) CreateTransaction(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetTransactionByReference(reference string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("reference = ?", reference).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *ledgerRepository) TransitionTransactionStatus(id uint, from, to string) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, from).
		UpdateColumn("status", to)
	if result.Error != nil {
		return fmt.Errorf("failed to transition transaction status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.ErrConflict
	}
	return nil
}

func (r *ledgerRepository) GetUserTransactions(userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	q := r.db.Model(&models.Transaction{}).
		Where("sender_id = ? OR recipient_id = ?", userID, userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, total, nil
}

func (r *ledgerRepository) GetTransactionsInRange(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	q := r.db.WithContext(ctx).
		Where("(sender_id = ? OR recipient_id = ?)", filter.UserID, filter.UserID).
		Where("created_at >= ? AND created_at < ?", filter.From, filter.To)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var transactions []models.Transaction
	if err := q.Order("created_at DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions in range: %w", err)
	}
	return transactions, nil
}

func (r *ledgerRepository) GetDailyUsage(ctx context.Context, senderID uint, since time.Time) (*DailyUsage, error) {
	var rows []TypeTotal
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("type, COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Where("sender_id = ? AND created_at >= ? AND status IN ?",
			senderID, since,
			[]string{models.TransactionStatusCompleted, models.TransactionStatusPending}).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily usage: %w", err)
	}

	usage := &DailyUsage{AmountByType: make(map[string]float64)}
	for _, row := range rows {
		usage.Count += row.Count
		usage.AmountByType[row.Type] = row.Total
	}
	return usage, nil
}

func (r *ledgerRepository) GetTypeTotals(ctx context.Context, userID uint, from, to time.Time) ([]TypeTotal, error) {
	var rows []TypeTotal
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("type, (sender_id = ?) AS outgoing, COUNT(*) AS count, "+
			"COALESCE(SUM(amount), 0) AS total, COALESCE(SUM(fee), 0) AS fees", userID).
		Where("(sender_id = ? OR recipient_id = ?)", userID, userID).
		Where("created_at >= ? AND created_at < ? AND status = ?",
			from, to, models.TransactionStatusCompleted).
		Group("type, outgoing").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get type totals: %w", err)
	}
	return rows, nil
}

func (r *ledgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
