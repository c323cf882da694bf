package repositories

import (
	"fluidit/internal/models"
)

// UserRepository handles persistence of user accounts.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	IncrementTokenVersion(userID uint) error
	Count() (int64, error)
}

// CoachRepository handles coach onboarding profiles.
type CoachRepository interface {
	CreateProfile(profile *models.CoachProfile) error
	GetProfileByUserID(userID uint) (*models.CoachProfile, error)
	UpdateProfile(profile *models.CoachProfile) error
	ListApproved(limit, offset int) ([]models.CoachProfile, int64, error)
}
