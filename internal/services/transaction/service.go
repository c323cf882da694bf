package transaction

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"
	"fluidit/internal/repositories"
)

// Service answers read-side questions about the ledger: history, receipts,
// monthly stats and exports. It never mutates balances.
type Service interface {
	GetHistory(ctx context.Context, userID uint, limit, offset int) ([]HistoryItem, int64, error)
	GetDetails(ctx context.Context, userID uint, reference string) (*HistoryItem, error)
	GetReceipt(ctx context.Context, userID uint, reference string) (*Receipt, error)
	GetMonthlyStats(ctx context.Context, userID uint, year int, month time.Month) (*MonthlyStats, error)
	Export(ctx context.Context, userID uint, opts ExportOptions) ([]byte, string, error)
}

type service struct {
	repo  repositories.LedgerRepository
	users repositories.UserRepository
}

// NewService creates the transaction query service.
func NewService(repo repositories.LedgerRepository, users repositories.UserRepository) Service {
	if repo == nil {
		panic("ledger repository is required")
	}
	if users == nil {
		panic("user repository is required")
	}
	return &service{repo: repo, users: users}
}

// GetHistory lists the user's transactions newest first, sent and received
// alike, with amounts signed from the caller's side.
func (s *service) GetHistory(ctx context.Context, userID uint, limit, offset int) ([]HistoryItem, int64, error) {
	transactions, total, err := s.repo.GetUserTransactions(userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]HistoryItem, 0, len(transactions))
	for i := range transactions {
		items = append(items, viewFor(userID, &transactions[i]))
	}
	return items, total, nil
}

// GetDetails returns a single transaction from the caller's perspective.
// Non-participants get ErrForbidden.
func (s *service) GetDetails(ctx context.Context, userID uint, reference string) (*HistoryItem, error) {
	tx, err := s.loadParticipantTransaction(userID, reference)
	if err != nil {
		return nil, err
	}
	item := viewFor(userID, tx)
	return &item, nil
}

// GetReceipt assembles the full receipt data set for a transaction the
// caller participated in. Rendering to json, html or pdf happens elsewhere;
// every format shows this same data.
func (s *service) GetReceipt(ctx context.Context, userID uint, reference string) (*Receipt, error) {
	tx, err := s.loadParticipantTransaction(userID, reference)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{
		Reference:      tx.Reference,
		Type:           tx.Type,
		Status:         tx.Status,
		Amount:         tx.Amount,
		Fee:            tx.Fee,
		Total:          tx.Amount + tx.Fee,
		SenderWalletID: tx.SenderWalletID,
		Description:    tx.Description,
		Note:           tx.Note,
		Date:           tx.CreatedAt,
	}
	if tx.RecipientWalletID != nil {
		receipt.RecipientWalletID = *tx.RecipientWalletID
	}

	if sender, err := s.users.GetByID(tx.SenderID); err == nil {
		receipt.SenderName = sender.Name
	}
	if tx.RecipientID != nil {
		if recipient, err := s.users.GetByID(*tx.RecipientID); err == nil {
			receipt.RecipientName = recipient.Name
		}
	}
	return receipt, nil
}

// GetMonthlyStats aggregates one calendar month of completed transactions.
func (s *service) GetMonthlyStats(ctx context.Context, userID uint, year int, month time.Month) (*MonthlyStats, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	totals, err := s.repo.GetTypeTotals(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &MonthlyStats{Year: year, Month: int(month)}
	for _, row := range totals {
		stats.TotalTransactions += row.Count
		switch {
		case row.Type == models.TransactionTypePayment && row.Outgoing:
			stats.TotalSpent += row.Total
			stats.TotalFees += row.Fees
		case row.Type == models.TransactionTypePayment:
			stats.TotalReceived += row.Total
		case row.Type == models.TransactionTypeTopup:
			stats.TotalTopUps += row.Total
		case row.Type == models.TransactionTypeWithdrawal:
			stats.TotalWithdrawn += row.Total
			stats.TotalFees += row.Fees
		case row.Type == models.TransactionTypeRefund && !row.Outgoing:
			stats.TotalReceived += row.Total
		}
	}
	return stats, nil
}

// Export returns the user's transactions in the requested window as JSON or
// CSV bytes plus the matching content type. Both encodings carry the same
// record set.
func (s *service) Export(ctx context.Context, userID uint, opts ExportOptions) ([]byte, string, error) {
	if opts.Format != FormatJSON && opts.Format != FormatCSV {
		return nil, "", apperr.ErrValidation.WithMessage(ErrUnsupportedFormat.Error())
	}
	if opts.From.IsZero() || opts.To.IsZero() || !opts.From.Before(opts.To) {
		return nil, "", apperr.ErrValidation.WithMessage(ErrInvalidRange.Error())
	}
	if opts.To.Sub(opts.From) > MaxExportRangeDays*24*time.Hour {
		return nil, "", apperr.ErrValidation.WithMessage(
			fmt.Sprintf("export range cannot exceed %d days", MaxExportRangeDays))
	}

	transactions, err := s.repo.GetTransactionsInRange(ctx, repositories.TransactionFilter{
		UserID: userID,
		From:   opts.From,
		To:     opts.To,
		Type:   opts.Type,
	})
	if err != nil {
		return nil, "", err
	}

	records := make([]ExportRecord, 0, len(transactions))
	for i := range transactions {
		records = append(records, exportRecordFor(userID, &transactions[i]))
	}

	switch opts.Format {
	case FormatCSV:
		data, err := encodeCSV(records)
		return data, "text/csv", err
	default:
		data, err := json.Marshal(records)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode export: %w", err)
		}
		return data, "application/json", nil
	}
}

func (s *service) loadParticipantTransaction(userID uint, reference string) (*models.Transaction, error) {
	tx, err := s.repo.GetTransactionByReference(reference)
	if err != nil {
		return nil, err
	}
	if !tx.Involves(userID) {
		return nil, apperr.ErrForbidden.WithMessage("you are not a participant in this transaction")
	}
	return tx, nil
}

// viewFor rewrites a ledger record from one participant's side. Recipients
// of a payment see it as a positive "received" entry and carry none of the
// sender's fee; senders see debits as negative amounts. Top-ups and incoming
// refunds are the only credits a sender-side view produces.
func viewFor(userID uint, tx *models.Transaction) HistoryItem {
	item := HistoryItem{
		Reference:   tx.Reference,
		Type:        tx.Type,
		Status:      tx.Status,
		Amount:      -tx.Amount,
		Fee:         tx.Fee,
		Description: tx.Description,
		Note:        tx.Note,
		CreatedAt:   tx.CreatedAt,
	}

	if tx.SenderID != userID && tx.RecipientID != nil && *tx.RecipientID == userID {
		if tx.Type == models.TransactionTypePayment {
			item.Type = models.TransactionTypeReceived
		}
		item.Amount = tx.Amount
		item.Fee = 0
		item.Counterparty = tx.SenderWalletID
		return item
	}

	if tx.Type == models.TransactionTypeTopup {
		item.Amount = tx.Amount
	}
	if tx.RecipientWalletID != nil {
		item.Counterparty = *tx.RecipientWalletID
	}
	return item
}

func exportRecordFor(userID uint, tx *models.Transaction) ExportRecord {
	view := viewFor(userID, tx)
	direction := DirectionDebit
	if view.Amount > 0 {
		direction = DirectionCredit
	}
	return ExportRecord{
		Reference:    view.Reference,
		Type:         view.Type,
		Direction:    direction,
		Status:       view.Status,
		Amount:       view.Amount,
		Fee:          view.Fee,
		Counterparty: view.Counterparty,
		Note:         view.Note,
		CreatedAt:    view.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func encodeCSV(records []ExportRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"reference", "type", "direction", "status", "amount",
		"fee", "counterparty", "note", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Reference, r.Type, r.Direction, r.Status,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			strconv.FormatFloat(r.Fee, 'f', 2, 64),
			r.Counterparty, r.Note, r.CreatedAt,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to encode export: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return buf.Bytes(), nil
}
