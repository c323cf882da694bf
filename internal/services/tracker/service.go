// Package tracker lets drivers log expenses and earnings and see where the
// money went over a period.
package tracker

import (
	"context"
	"strings"
	"time"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"
	"fluidit/internal/repositories"
)

const maxEntryAmount = 10000000

type Service interface {
	AddEntry(ctx context.Context, userID uint, kind, category string, amount float64, note string, entryDate time.Time) (*models.TrackerEntry, error)
	ListEntries(ctx context.Context, userID uint, from, to time.Time, kind string, limit, offset int) ([]models.TrackerEntry, int64, error)
	DeleteEntry(ctx context.Context, userID, entryID uint) error
	Summary(ctx context.Context, userID uint, from, to time.Time) (*repositories.TrackerSummary, error)
}

type service struct {
	repo repositories.TrackerRepository
	now  func() time.Time
}

// NewService creates the driver tracker service.
func NewService(repo repositories.TrackerRepository) Service {
	if repo == nil {
		panic("tracker repository is required")
	}
	return &service{repo: repo, now: time.Now}
}

// AddEntry records one expense or earning. A zero entry date means today.
func (s *service) AddEntry(ctx context.Context, userID uint, kind, category string, amount float64, note string, entryDate time.Time) (*models.TrackerEntry, error) {
	if kind != models.TrackerKindExpense && kind != models.TrackerKindEarning {
		return nil, apperr.ErrValidation.WithMessage("kind must be expense or earning")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperr.ErrValidation.WithMessage("category is required")
	}
	if amount <= 0 || amount > maxEntryAmount {
		return nil, apperr.ErrValidation.WithMessage("valid amount is required")
	}
	if entryDate.IsZero() {
		entryDate = s.now()
	}
	if entryDate.After(s.now().Add(24 * time.Hour)) {
		return nil, apperr.ErrValidation.WithMessage("entry date cannot be in the future")
	}

	entry := &models.TrackerEntry{
		UserID:    userID,
		Kind:      kind,
		Category:  category,
		Amount:    amount,
		Note:      note,
		EntryDate: entryDate,
	}
	if err := s.repo.CreateEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries returns the user's entries in the window, newest first. A zero
// window defaults to the last 30 days.
func (s *service) ListEntries(ctx context.Context, userID uint, from, to time.Time, kind string, limit, offset int) ([]models.TrackerEntry, int64, error) {
	from, to = s.normalizeRange(from, to)
	if kind != "" && kind != models.TrackerKindExpense && kind != models.TrackerKindEarning {
		return nil, 0, apperr.ErrValidation.WithMessage("kind must be expense or earning")
	}
	return s.repo.ListEntries(userID, from, to, kind, limit, offset)
}

// DeleteEntry removes one of the caller's own entries.
func (s *service) DeleteEntry(ctx context.Context, userID, entryID uint) error {
	if err := s.repo.DeleteEntry(userID, entryID); err != nil {
		return apperr.ErrNotFound.WithMessage("tracker entry not found")
	}
	return nil
}

// Summary aggregates the window into totals per kind and category.
func (s *service) Summary(ctx context.Context, userID uint, from, to time.Time) (*repositories.TrackerSummary, error) {
	from, to = s.normalizeRange(from, to)
	return s.repo.Summary(userID, from, to)
}

func (s *service) normalizeRange(from, to time.Time) (time.Time, time.Time) {
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return from, to
}
