package transaction

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"
	"fluidit/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockLedgerRepo embeds the interface so only the methods this package
// exercises need stubs.
type mockLedgerRepo struct {
	mock.Mock
	repositories.LedgerRepository
}

func (m *mockLedgerRepo) GetUserTransactions(userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *mockLedgerRepo) GetTransactionByReference(reference string) (*models.Transaction, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockLedgerRepo) GetTransactionsInRange(ctx context.Context, filter repositories.TransactionFilter) ([]models.Transaction, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *mockLedgerRepo) GetTypeTotals(ctx context.Context, userID uint, from, to time.Time) ([]repositories.TypeTotal, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).([]repositories.TypeTotal), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
	repositories.UserRepository
}

func (m *mockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }

func sampleLedger() []models.Transaction {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return []models.Transaction{
		{
			Reference: "TXN00000001AAAAA", Type: models.TransactionTypePayment,
			Status: models.TransactionStatusCompleted, SenderID: 1,
			RecipientID: uintPtr(2), SenderWalletID: "FLD20260001",
			RecipientWalletID: strPtr("FLD20260002"),
			Amount: 500, Fee: 10, CreatedAt: created,
		},
		{
			Reference: "TXN00000002BBBBB", Type: models.TransactionTypePayment,
			Status: models.TransactionStatusCompleted, SenderID: 3,
			RecipientID: uintPtr(1), SenderWalletID: "FLD20260003",
			RecipientWalletID: strPtr("FLD20260001"),
			Amount: 200, Fee: 10, CreatedAt: created,
		},
		{
			Reference: "TOP00000003CCCCC", Type: models.TransactionTypeTopup,
			Status: models.TransactionStatusCompleted, SenderID: 1,
			SenderWalletID: "FLD20260001",
			Amount:         1000,
			CreatedAt:      created,
		},
		{
			Reference: "WDL00000004DDDDD", Type: models.TransactionTypeWithdrawal,
			Status: models.TransactionStatusCompleted, SenderID: 1,
			SenderWalletID: "FLD20260001",
			Amount:         300,
			Fee:            50,
			CreatedAt:      created,
		},
	}
}

func TestService_GetHistory(t *testing.T) {
	repo := new(mockLedgerRepo)
	users := new(mockUserRepo)
	svc := NewService(repo, users)

	repo.On("GetUserTransactions", uint(1), 10, 0).
		Return(sampleLedger(), int64(4), nil)

	items, total, err := svc.GetHistory(context.Background(), 1, 10, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, items, 4)

	sent := items[0]
	assert.Equal(t, -500.0, sent.Amount)
	assert.Equal(t, 10.0, sent.Fee)
	assert.Equal(t, models.TransactionTypePayment, sent.Type)
	assert.Equal(t, "FLD20260002", sent.Counterparty)

	received := items[1]
	assert.Equal(t, 200.0, received.Amount)
	assert.Equal(t, models.TransactionTypeReceived, received.Type)
	assert.Zero(t, received.Fee, "recipient carries none of the sender's fee")
	assert.Equal(t, "FLD20260003", received.Counterparty)

	topup := items[2]
	assert.Equal(t, 1000.0, topup.Amount)
	assert.Equal(t, models.TransactionTypeTopup, topup.Type)

	withdrawal := items[3]
	assert.Equal(t, -300.0, withdrawal.Amount)
	assert.Equal(t, 50.0, withdrawal.Fee)
}

func TestService_GetDetails(t *testing.T) {
	tx := sampleLedger()[0]

	t.Run("participant sees the record", func(t *testing.T) {
		repo := new(mockLedgerRepo)
		svc := NewService(repo, new(mockUserRepo))
		repo.On("GetTransactionByReference", tx.Reference).Return(&tx, nil)

		item, err := svc.GetDetails(context.Background(), 2, tx.Reference)

		require.NoError(t, err)
		assert.Equal(t, 500.0, item.Amount, "recipient side is a credit")
	})

	t.Run("outsiders are rejected", func(t *testing.T) {
		repo := new(mockLedgerRepo)
		svc := NewService(repo, new(mockUserRepo))
		repo.On("GetTransactionByReference", tx.Reference).Return(&tx, nil)

		_, err := svc.GetDetails(context.Background(), 99, tx.Reference)

		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("unknown reference", func(t *testing.T) {
		repo := new(mockLedgerRepo)
		svc := NewService(repo, new(mockUserRepo))
		repo.On("GetTransactionByReference", "TXNMISSING").Return(nil, apperr.ErrNotFound)

		_, err := svc.GetDetails(context.Background(), 1, "TXNMISSING")

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_GetReceipt(t *testing.T) {
	tx := sampleLedger()[0]
	repo := new(mockLedgerRepo)
	users := new(mockUserRepo)
	svc := NewService(repo, users)

	repo.On("GetTransactionByReference", tx.Reference).Return(&tx, nil)
	users.On("GetByID", uint(1)).Return(&models.User{Name: "Ade"}, nil)
	users.On("GetByID", uint(2)).Return(&models.User{Name: "Bisi"}, nil)

	receipt, err := svc.GetReceipt(context.Background(), 1, tx.Reference)

	require.NoError(t, err)
	assert.Equal(t, "Ade", receipt.SenderName)
	assert.Equal(t, "Bisi", receipt.RecipientName)
	assert.Equal(t, 510.0, receipt.Total)
	assert.Equal(t, "FLD20260001", receipt.SenderWalletID)
	assert.Equal(t, "FLD20260002", receipt.RecipientWalletID)
}

func TestService_GetMonthlyStats(t *testing.T) {
	repo := new(mockLedgerRepo)
	svc := NewService(repo, new(mockUserRepo))

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	repo.On("GetTypeTotals", mock.Anything, uint(1), from, to).
		Return([]repositories.TypeTotal{
			{Type: models.TransactionTypePayment, Outgoing: true, Count: 3, Total: 1500, Fees: 30},
			{Type: models.TransactionTypePayment, Outgoing: false, Count: 2, Total: 700},
			{Type: models.TransactionTypeTopup, Outgoing: true, Count: 1, Total: 5000},
			{Type: models.TransactionTypeWithdrawal, Outgoing: true, Count: 1, Total: 300, Fees: 50},
		}, nil)

	stats, err := svc.GetMonthlyStats(context.Background(), 1, 2026, time.March)

	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalTransactions)
	assert.Equal(t, 1500.0, stats.TotalSpent)
	assert.Equal(t, 700.0, stats.TotalReceived)
	assert.Equal(t, 5000.0, stats.TotalTopUps)
	assert.Equal(t, 300.0, stats.TotalWithdrawn)
	assert.Equal(t, 80.0, stats.TotalFees)
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	newSvc := func() (*mockLedgerRepo, Service) {
		repo := new(mockLedgerRepo)
		return repo, NewService(repo, new(mockUserRepo))
	}

	t.Run("json and csv carry the same record set", func(t *testing.T) {
		repo, svc := newSvc()
		repo.On("GetTransactionsInRange", mock.Anything, mock.Anything).
			Return(sampleLedger(), nil)

		jsonData, jsonCT, err := svc.Export(ctx, 1, ExportOptions{From: from, To: to, Format: FormatJSON})
		require.NoError(t, err)
		assert.Equal(t, "application/json", jsonCT)

		csvData, csvCT, err := svc.Export(ctx, 1, ExportOptions{From: from, To: to, Format: FormatCSV})
		require.NoError(t, err)
		assert.Equal(t, "text/csv", csvCT)

		var records []ExportRecord
		require.NoError(t, json.Unmarshal(jsonData, &records))

		rows, err := csv.NewReader(strings.NewReader(string(csvData))).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, len(records)+1, "header plus one row per record")

		for i, record := range records {
			assert.Equal(t, record.Reference, rows[i+1][0])
			assert.Equal(t, record.Direction, rows[i+1][2])
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, svc := newSvc()
		_, _, err := svc.Export(ctx, 1, ExportOptions{From: from, To: to, Format: "xml"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, svc := newSvc()
		_, _, err := svc.Export(ctx, 1, ExportOptions{From: to, To: from, Format: FormatJSON})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}
