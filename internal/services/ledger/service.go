package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"
	"fluidit/internal/repositories"

	"github.com/google/uuid"
)

// Service is the wallet ledger engine: transfers, top-ups, withdrawals and
// cancellation, plus wallet lookups.
type Service interface {
	Transfer(ctx context.Context, senderID uint, recipientWalletID string, amount float64, note, idempotencyKey string) (*Result, error)
	TopUp(ctx context.Context, userID uint, amount float64, cardToken string) (*Result, error)
	Withdraw(ctx context.Context, userID uint, amount float64) (*Result, error)
	Cancel(ctx context.Context, userID uint, reference string) error
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	CreateWallet(ctx context.Context, userID uint, walletID string) (*models.Wallet, error)
	ValidateWallet(ctx context.Context, walletID string) (*models.User, error)
	SetWalletStatus(ctx context.Context, walletID, status, reason string) error
}

type service struct {
	repo     repositories.LedgerRepository
	users    repositories.UserRepository
	guard    LimitGuard
	fees     FeeCalculator
	cache    CacheOperator
	notifier Notifier
	charger  Charger
	metrics  MetricsCollector
	config   Config
	now      func() time.Time
}

// NewService creates the ledger engine. repo, users, guard, fees and cache
// are required; notifier, charger and metrics may be nil.
func NewService(
	repo repositories.LedgerRepository,
	users repositories.UserRepository,
	guard LimitGuard,
	fees FeeCalculator,
	cache CacheOperator,
	notifier Notifier,
	charger Charger,
	metrics MetricsCollector,
	config Config,
) Service {
	if repo == nil {
		panic("ledger repository is required")
	}
	if users == nil {
		panic("user repository is required")
	}
	if guard == nil {
		panic("limit guard is required")
	}
	if fees == nil {
		panic("fee calculator is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	if config.MaxTopUpAmount <= 0 {
		config.MaxTopUpAmount = DefaultMaxTopUpAmount
	}
	if config.MaxTransferAmount <= 0 {
		config.MaxTransferAmount = DefaultMaxTransferAmount
	}
	if config.MinAmount <= 0 {
		config.MinAmount = DefaultMinAmount
	}

	return &service{
		repo:     repo,
		users:    users,
		guard:    guard,
		fees:     fees,
		cache:    cache,
		notifier: notifier,
		charger:  charger,
		metrics:  metrics,
		config:   config,
		now:      time.Now,
	}
}

// Transfer moves funds from the sender's wallet to the wallet identified by
// recipientWalletID. The balance check and debit are one guarded UPDATE
// inside a single database transaction, so concurrent transfers cannot
// jointly overdraw the sender.
func (s *service) Transfer(ctx context.Context, senderID uint, recipientWalletID string, amount float64, note, idempotencyKey string) (*Result, error) {
	if amount < s.config.MinAmount || amount > s.config.MaxTransferAmount {
		return nil, apperr.ErrValidation.WithMessage(
			fmt.Sprintf("amount must be between %.2f and %.2f", s.config.MinAmount, s.config.MaxTransferAmount))
	}
	if recipientWalletID == "" {
		return nil, apperr.ErrValidation.WithMessage("recipient wallet ID is required")
	}

	senderWallet, err := s.repo.GetWalletByUserID(senderID)
	if err != nil {
		return nil, err
	}
	if senderWallet.WalletID == recipientWalletID {
		return nil, apperr.ErrValidation.WithMessage(ErrSelfTransfer.Error())
	}

	recipientWallet, err := s.repo.GetWalletByWalletID(recipientWalletID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrNotFound.WithMessage("recipient not found")
		}
		return nil, err
	}

	if err := s.guard.Check(ctx, senderWallet, amount, models.TransactionTypePayment, s.now()); err != nil {
		return nil, err
	}

	fee := s.fees.Calculate(amount, models.TransactionTypePayment)
	total := amount + fee

	// Fast pre-check against the read balance. The authoritative check is
	// the guarded debit below.
	if senderWallet.Balance < total {
		return nil, apperr.ErrInsufficientFunds.WithMessage(
			fmt.Sprintf("insufficient balance: you need %.2f (%.2f + %.2f fee)", total, amount, fee))
	}

	recipient, err := s.users.GetByID(recipientWallet.UserID)
	if err != nil {
		return nil, err
	}
	sender, err := s.users.GetByID(senderID)
	if err != nil {
		return nil, err
	}

	reference := NewReference(ReferencePrefixPayment)

	if idempotencyKey != "" {
		prior, err := s.claimIdempotencyKey(ctx, senderID, idempotencyKey, reference)
		if err != nil {
			return nil, err
		}
		if prior != nil {
			return prior, nil
		}
	}

	tx := &models.Transaction{
		Reference:         reference,
		Type:              models.TransactionTypePayment,
		Status:            models.TransactionStatusCompleted,
		SenderID:          senderID,
		RecipientID:       &recipientWallet.UserID,
		SenderWalletID:    senderWallet.WalletID,
		RecipientWalletID: &recipientWallet.WalletID,
		Amount:            amount,
		Fee:               fee,
		Description:       fmt.Sprintf("Transfer to %s", recipient.Name),
		Note:              note,
		Metadata:          models.NewJSON(map[string]interface{}{"link_id": uuid.NewString()}),
	}

	err = s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		if err := r.DebitWallet(senderWallet.ID, total); err != nil {
			return err
		}
		if err := r.CreditWallet(recipientWallet.ID, amount); err != nil {
			return err
		}
		return r.CreateTransaction(tx)
	})
	if err != nil {
		s.releaseIdempotencyKey(ctx, senderID, idempotencyKey)
		s.metrics.RecordError("transfer", err.Error())
		return nil, err
	}

	s.invalidateWallets(ctx, senderID, recipientWallet.UserID)
	s.metrics.RecordTransaction(models.TransactionTypePayment, amount)

	newBalance := senderWallet.Balance - total
	if fresh, err := s.repo.GetWalletByUserID(senderID); err == nil {
		newBalance = fresh.Balance
	}

	if s.notifier != nil {
		s.notifier.TransferCompleted(ctx, sender, recipient, tx, newBalance)
	}

	return &Result{Transaction: tx, NewBalance: newBalance}, nil
}

// TopUp credits the caller's wallet, optionally charging a card first.
func (s *service) TopUp(ctx context.Context, userID uint, amount float64, cardToken string) (*Result, error) {
	if amount < s.config.MinAmount {
		return nil, apperr.ErrValidation.WithMessage("valid amount is required")
	}
	if amount > s.config.MaxTopUpAmount {
		return nil, apperr.ErrValidation.WithMessage(
			fmt.Sprintf("maximum top-up amount is %.2f", s.config.MaxTopUpAmount))
	}

	wallet, err := s.repo.GetWalletByUserID(userID)
	if err != nil {
		return nil, err
	}
	if wallet.Status != models.WalletStatusActive {
		return nil, apperr.ErrWalletLocked
	}

	if err := s.guard.Check(ctx, wallet, amount, models.TransactionTypeTopup, s.now()); err != nil {
		return nil, err
	}

	if cardToken != "" && s.charger != nil {
		if err := s.charger.Charge(ctx, cardToken, amount, "Wallet top-up"); err != nil {
			s.metrics.RecordError("topup", "charge_failed")
			return nil, fmt.Errorf("card charge failed: %w", err)
		}
	}

	tx := &models.Transaction{
		Reference:      NewReference(ReferencePrefixTopup),
		Type:           models.TransactionTypeTopup,
		Status:         models.TransactionStatusCompleted,
		SenderID:       userID,
		SenderWalletID: wallet.WalletID,
		Amount:         amount,
		Fee:            0,
		Description:    "Wallet Top-up",
		Note:           "Funds added to wallet",
	}

	err = s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		if err := r.CreditWallet(wallet.ID, amount); err != nil {
			return err
		}
		return r.CreateTransaction(tx)
	})
	if err != nil {
		s.metrics.RecordError("topup", err.Error())
		return nil, err
	}

	s.invalidateWallets(ctx, userID)
	s.metrics.RecordTransaction(models.TransactionTypeTopup, amount)

	newBalance := wallet.Balance + amount
	if fresh, err := s.repo.GetWalletByUserID(userID); err == nil {
		newBalance = fresh.Balance
	}

	if s.notifier != nil {
		if user, err := s.users.GetByID(userID); err == nil {
			s.notifier.TopUpCompleted(ctx, user, tx, newBalance)
		}
	}

	return &Result{Transaction: tx, NewBalance: newBalance}, nil
}

// Withdraw debits amount plus the withdrawal fee from the caller's wallet.
func (s *service) Withdraw(ctx context.Context, userID uint, amount float64) (*Result, error) {
	if amount < s.config.MinAmount {
		return nil, apperr.ErrValidation.WithMessage("valid amount is required")
	}

	wallet, err := s.repo.GetWalletByUserID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Check(ctx, wallet, amount, models.TransactionTypeWithdrawal, s.now()); err != nil {
		return nil, err
	}

	fee := s.fees.Calculate(amount, models.TransactionTypeWithdrawal)
	total := amount + fee

	if wallet.Balance < total {
		return nil, apperr.ErrInsufficientFunds.WithMessage(
			fmt.Sprintf("insufficient balance: you need %.2f (%.2f + %.2f fee)", total, amount, fee))
	}

	tx := &models.Transaction{
		Reference:      NewReference(ReferencePrefixWithdrawal),
		Type:           models.TransactionTypeWithdrawal,
		Status:         models.TransactionStatusCompleted,
		SenderID:       userID,
		SenderWalletID: wallet.WalletID,
		Amount:         amount,
		Fee:            fee,
		Description:    "Wallet Withdrawal",
	}

	err = s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		if err := r.DebitWallet(wallet.ID, total); err != nil {
			return err
		}
		return r.CreateTransaction(tx)
	})
	if err != nil {
		s.metrics.RecordError("withdrawal", err.Error())
		return nil, err
	}

	s.invalidateWallets(ctx, userID)
	s.metrics.RecordTransaction(models.TransactionTypeWithdrawal, amount)

	newBalance := wallet.Balance - total
	if fresh, err := s.repo.GetWalletByUserID(userID); err == nil {
		newBalance = fresh.Balance
	}

	if s.notifier != nil {
		if user, err := s.users.GetByID(userID); err == nil {
			s.notifier.WithdrawalCompleted(ctx, user, tx, newBalance)
		}
	}

	return &Result{Transaction: tx, NewBalance: newBalance}, nil
}

// Cancel moves a still-pending payment to cancelled. Only the sender may
// cancel, only within the cancel window. Completed, failed and cancelled
// records are terminal.
func (s *service) Cancel(ctx context.Context, userID uint, reference string) error {
	tx, err := s.repo.GetTransactionByReference(reference)
	if err != nil {
		return err
	}
	// Non-senders get the same answer as a missing record.
	if tx.SenderID != userID {
		return apperr.ErrNotFound.WithMessage("pending transaction not found")
	}
	if !tx.CanBeCancelled(s.now()) {
		return apperr.ErrConflict.WithMessage("transaction can no longer be cancelled")
	}
	if err := s.repo.TransitionTransactionStatus(tx.ID,
		models.TransactionStatusPending, models.TransactionStatusCancelled); err != nil {
		return err
	}
	return nil
}

// GetWallet returns the caller's wallet, serving from cache when possible.
func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
		return wallet, nil
	}

	wallet, err := s.repo.GetWalletByUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetWallet(ctx, wallet); err != nil {
		log.Printf("failed to cache wallet for user %d: %v", userID, err)
	}
	return wallet, nil
}

// CreateWallet provisions a wallet for a new user.
func (s *service) CreateWallet(ctx context.Context, userID uint, walletID string) (*models.Wallet, error) {
	wallet := &models.Wallet{
		WalletID: walletID,
		UserID:   userID,
		Status:   models.WalletStatusActive,
	}
	if err := s.repo.CreateWallet(wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// SetWalletStatus locks or unlocks a wallet. Locked wallets reject every
// debit and credit at the store level.
func (s *service) SetWalletStatus(ctx context.Context, walletID, status, reason string) error {
	if status != models.WalletStatusActive && status != models.WalletStatusLocked {
		return apperr.ErrValidation.WithMessage("status must be active or locked")
	}

	wallet, err := s.repo.GetWalletByWalletID(walletID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateWalletStatus(wallet.ID, status, reason); err != nil {
		return err
	}
	s.invalidateWallets(ctx, wallet.UserID)
	return nil
}

// ValidateWallet resolves a wallet ID to its owner, for scan-to-pay checks.
func (s *service) ValidateWallet(ctx context.Context, walletID string) (*models.User, error) {
	wallet, err := s.repo.GetWalletByWalletID(walletID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrNotFound.WithMessage("wallet not found")
		}
		return nil, err
	}
	return s.users.GetByID(wallet.UserID)
}

// claimIdempotencyKey reserves the key for this attempt. A nil, nil return
// means the claim is ours and the transfer should run. When the key was
// already claimed it loads and returns the prior result; a retry that races
// the original commit is rejected with a conflict rather than run as a
// second transfer.
func (s *service) claimIdempotencyKey(ctx context.Context, senderID uint, key, reference string) (*Result, error) {
	redisKey := fmt.Sprintf("%s%d:%s", idempotencyKeyPrefix, senderID, key)

	claimed, err := s.cache.SetNX(ctx, redisKey, reference, idempotencyKeyTTL)
	if err != nil {
		// Cache outage: proceed without idempotency rather than block money
		// movement, but make it visible.
		log.Printf("idempotency claim failed for user %d: %v", senderID, err)
		return nil, nil
	}
	if claimed {
		return nil, nil
	}

	priorRef, err := s.cache.Get(ctx, redisKey)
	if err != nil {
		log.Printf("idempotency lookup failed for user %d: %v", senderID, err)
		return nil, nil
	}
	tx, err := s.repo.GetTransactionByReference(priorRef)
	if err != nil {
		// The key is claimed but its transfer has not committed yet.
		// Running this attempt anyway would debit the sender twice.
		return nil, apperr.ErrConflict.WithMessage(
			"a transfer with this idempotency key is already in progress")
	}

	result := &Result{Transaction: tx}
	if wallet, err := s.repo.GetWalletByUserID(senderID); err == nil {
		result.NewBalance = wallet.Balance
	}
	return result, nil
}

func (s *service) releaseIdempotencyKey(ctx context.Context, senderID uint, key string) {
	if key == "" {
		return
	}
	redisKey := fmt.Sprintf("%s%d:%s", idempotencyKeyPrefix, senderID, key)
	if err := s.cache.Delete(ctx, redisKey); err != nil {
		log.Printf("failed to release idempotency key for user %d: %v", senderID, err)
	}
}

func (s *service) invalidateWallets(ctx context.Context, userIDs ...uint) {
	for _, id := range userIDs {
		if err := s.cache.InvalidateWallet(ctx, id); err != nil {
			log.Printf("failed to invalidate wallet cache for user %d: %v", id, err)
		}
	}
}
