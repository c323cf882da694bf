// Package coach handles coach onboarding: apply, review, and the public
// directory of approved coaches.
package coach

import (
	"context"
	"errors"
	"strings"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"
	"fluidit/internal/repositories"
)

// DirectoryEntry is one row of the public coach listing.
type DirectoryEntry struct {
	UserID    uint   `json:"userId"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Specialty string `json:"specialty"`
}

type Service interface {
	Apply(ctx context.Context, userID uint, bio, specialty string) (*models.CoachProfile, error)
	GetApplication(ctx context.Context, userID uint) (*models.CoachProfile, error)
	Review(ctx context.Context, applicantUserID uint, approve bool) (*models.CoachProfile, error)
	ListApproved(ctx context.Context, limit, offset int) ([]DirectoryEntry, int64, error)
}

type service struct {
	coaches repositories.CoachRepository
	users   repositories.UserRepository
}

// NewService creates the coach onboarding service.
func NewService(coaches repositories.CoachRepository, users repositories.UserRepository) Service {
	if coaches == nil {
		panic("coach repository is required")
	}
	if users == nil {
		panic("user repository is required")
	}
	return &service{coaches: coaches, users: users}
}

// Apply files a coach application. A user can hold at most one application;
// re-applying after rejection resets it to pending.
func (s *service) Apply(ctx context.Context, userID uint, bio, specialty string) (*models.CoachProfile, error) {
	bio = strings.TrimSpace(bio)
	specialty = strings.TrimSpace(specialty)
	if bio == "" || specialty == "" {
		return nil, apperr.ErrValidation.WithMessage("bio and specialty are required")
	}

	existing, err := s.coaches.GetProfileByUserID(userID)
	if err == nil {
		if existing.Status != models.CoachStatusRejected {
			return nil, apperr.ErrConflict.WithMessage("application already submitted")
		}
		existing.Bio = bio
		existing.Specialty = specialty
		existing.Status = models.CoachStatusPending
		if err := s.coaches.UpdateProfile(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	profile := &models.CoachProfile{
		UserID:    userID,
		Bio:       bio,
		Specialty: specialty,
		Status:    models.CoachStatusPending,
	}
	if err := s.coaches.CreateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetApplication returns the caller's own application.
func (s *service) GetApplication(ctx context.Context, userID uint) (*models.CoachProfile, error) {
	return s.coaches.GetProfileByUserID(userID)
}

// Review approves or rejects a pending application. Approval also moves the
// user onto the coach role.
func (s *service) Review(ctx context.Context, applicantUserID uint, approve bool) (*models.CoachProfile, error) {
	profile, err := s.coaches.GetProfileByUserID(applicantUserID)
	if err != nil {
		return nil, err
	}
	if profile.Status != models.CoachStatusPending {
		return nil, apperr.ErrConflict.WithMessage("application already reviewed")
	}

	if approve {
		profile.Status = models.CoachStatusApproved
	} else {
		profile.Status = models.CoachStatusRejected
	}
	if err := s.coaches.UpdateProfile(profile); err != nil {
		return nil, err
	}

	if approve {
		user, err := s.users.GetByID(applicantUserID)
		if err != nil {
			return nil, err
		}
		user.Role = models.RoleCoach
		if err := s.users.Update(user); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// ListApproved returns the public coach directory, newest first.
func (s *service) ListApproved(ctx context.Context, limit, offset int) ([]DirectoryEntry, int64, error) {
	profiles, total, err := s.coaches.ListApproved(limit, offset)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]DirectoryEntry, 0, len(profiles))
	for _, profile := range profiles {
		entry := DirectoryEntry{
			UserID:    profile.UserID,
			Bio:       profile.Bio,
			Specialty: profile.Specialty,
		}
		if user, err := s.users.GetByID(profile.UserID); err == nil {
			entry.Name = user.Name
		}
		entries = append(entries, entry)
	}
	return entries, total, nil
}
