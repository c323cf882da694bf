package repositories

import (
	"fmt"
	"time"

	"fluidit/internal/models"

	"gorm.io/gorm"
)

// TrackerSummary aggregates a driver's entries over a date range.
type TrackerSummary struct {
	TotalEarnings float64
	TotalExpenses float64
	Net           float64
	ByCategory    map[string]float64
	EntryCount    int64
}

// TrackerRepository persists driver expense and earning entries.
type TrackerRepository interface {
	CreateEntry(entry *models.TrackerEntry) error
	ListEntries(userID uint, from, to time.Time, kind string, limit, offset int) ([]models.TrackerEntry, int64, error)
	DeleteEntry(userID, entryID uint) error
	Summary(userID uint, from, to time.Time) (*TrackerSummary, error)
}

type trackerRepository struct {
	db *gorm.DB
}

// NewTrackerRepository creates a GORM-backed tracker repository.
func NewTrackerRepository(db *gorm.DB) TrackerRepository {
	return &trackerRepository{db: db}
}

func (r *trackerRepository) CreateEntry(entry *models.TrackerEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create tracker entry: %w", err)
	}
	return nil
}

func (r *trackerRepository) ListEntries(userID uint, from, to time.Time, kind string, limit, offset int) ([]models.TrackerEntry, int64, error) {
	q := r.db.Model(&models.TrackerEntry{}).
		Where("user_id = ? AND entry_date >= ? AND entry_date < ?", userID, from, to)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tracker entries: %w", err)
	}

	var entries []models.TrackerEntry
	err := q.Order("entry_date DESC").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tracker entries: %w", err)
	}
	return entries, total, nil
}

func (r *trackerRepository) DeleteEntry(userID, entryID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.TrackerEntry{}, entryID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tracker entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("tracker entry %d: %w", entryID, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *trackerRepository) Summary(userID uint, from, to time.Time) (*TrackerSummary, error) {
	type row struct {
		Kind     string
		Category string
		Count    int64
		Total    float64
	}
	var rows []row
	err := r.db.Model(&models.TrackerEntry{}).
		Select("kind, category, COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND entry_date >= ? AND entry_date < ?", userID, from, to).
		Group("kind, category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize tracker entries: %w", err)
	}

	summary := &TrackerSummary{ByCategory: make(map[string]float64)}
	for _, row := range rows {
		summary.EntryCount += row.Count
		summary.ByCategory[row.Category] += row.Total
		switch row.Kind {
		case models.TrackerKindEarning:
			summary.TotalEarnings += row.Total
		case models.TrackerKindExpense:
			summary.TotalExpenses += row.Total
		}
	}
	summary.Net = summary.TotalEarnings - summary.TotalExpenses
	return summary, nil
}
