package tracker

import (
	"context"
	"testing"
	"time"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"
	"fluidit/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockTrackerRepo struct {
	mock.Mock
}

func (m *mockTrackerRepo) CreateEntry(entry *models.TrackerEntry) error {
	return m.Called(entry).Error(0)
}

func (m *mockTrackerRepo) ListEntries(userID uint, from, to time.Time, kind string, limit, offset int) ([]models.TrackerEntry, int64, error) {
	args := m.Called(userID, from, to, kind, limit, offset)
	return args.Get(0).([]models.TrackerEntry), args.Get(1).(int64), args.Error(2)
}

func (m *mockTrackerRepo) DeleteEntry(userID, entryID uint) error {
	return m.Called(userID, entryID).Error(0)
}

func (m *mockTrackerRepo) Summary(userID uint, from, to time.Time) (*repositories.TrackerSummary, error) {
	args := m.Called(userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.TrackerSummary), args.Error(1)
}

func TestService_AddEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("valid entry is stored", func(t *testing.T) {
		repo := new(mockTrackerRepo)
		svc := NewService(repo)
		repo.On("CreateEntry", mock.MatchedBy(func(e *models.TrackerEntry) bool {
			return e.Kind == models.TrackerKindExpense && e.Category == "fuel" && e.Amount == 4500
		})).Return(nil)

		entry, err := svc.AddEntry(ctx, 1, models.TrackerKindExpense, "fuel", 4500, "", time.Time{})

		require.NoError(t, err)
		assert.False(t, entry.EntryDate.IsZero(), "zero entry date defaults to now")
	})

	t.Run("unknown kind", func(t *testing.T) {
		svc := NewService(new(mockTrackerRepo))
		_, err := svc.AddEntry(ctx, 1, "income", "fuel", 4500, "", time.Time{})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		svc := NewService(new(mockTrackerRepo))
		_, err := svc.AddEntry(ctx, 1, models.TrackerKindEarning, "trips", 0, "", time.Time{})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("future entry date", func(t *testing.T) {
		svc := NewService(new(mockTrackerRepo))
		_, err := svc.AddEntry(ctx, 1, models.TrackerKindEarning, "trips", 100, "",
			time.Now().Add(48*time.Hour))
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestService_ListEntries(t *testing.T) {
	t.Run("zero window defaults to the last 30 days", func(t *testing.T) {
		repo := new(mockTrackerRepo)
		svc := NewService(repo)
		repo.On("ListEntries", uint(1), mock.MatchedBy(func(from time.Time) bool {
			return time.Since(from) > 29*24*time.Hour
		}), mock.Anything, "", 10, 0).Return([]models.TrackerEntry{}, int64(0), nil)

		_, _, err := svc.ListEntries(context.Background(), 1, time.Time{}, time.Time{}, "", 10, 0)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("bad kind filter", func(t *testing.T) {
		svc := NewService(new(mockTrackerRepo))
		_, _, err := svc.ListEntries(context.Background(), 1, time.Time{}, time.Time{}, "income", 10, 0)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestService_DeleteEntry(t *testing.T) {
	repo := new(mockTrackerRepo)
	svc := NewService(repo)
	repo.On("DeleteEntry", uint(1), uint(9)).Return(gorm.ErrRecordNotFound)

	err := svc.DeleteEntry(context.Background(), 1, 9)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_Summary(t *testing.T) {
	repo := new(mockTrackerRepo)
	svc := NewService(repo)
	repo.On("Summary", uint(1), mock.Anything, mock.Anything).
		Return(&repositories.TrackerSummary{
			TotalEarnings: 20000, TotalExpenses: 7500, Net: 12500,
			ByCategory: map[string]float64{"trips": 20000, "fuel": 7500},
			EntryCount: 12,
		}, nil)

	summary, err := svc.Summary(context.Background(), 1, time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.Equal(t, 12500.0, summary.Net)
	assert.Equal(t, 7500.0, summary.ByCategory["fuel"])
}
