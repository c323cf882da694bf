package repositories

import (
	"errors"
	"fmt"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint breaks.
const pgUniqueViolation = "23505"

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Wallet").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.getBy("email = ?", email)
}

func (r *userRepository) GetByPhone(phone string) (*models.User, error) {
	return r.getBy("phone = ?", phone)
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	return r.getBy("username = ?", username)
}

func (r *userRepository) getBy(query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Wallet").Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *userRepository) IncrementTokenVersion(userID uint) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment token version: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type coachRepository struct {
	db *gorm.DB
}

// NewCoachRepository creates a GORM-backed coach profile repository.
func NewCoachRepository(db *gorm.DB) CoachRepository {
	return &coachRepository{db: db}
}

func (r *coachRepository) CreateProfile(profile *models.CoachProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("failed to create coach profile: %w", err)
	}
	return nil
}

func (r *coachRepository) GetProfileByUserID(userID uint) (*models.CoachProfile, error) {
	var profile models.CoachProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coach profile: %w", err)
	}
	return &profile, nil
}

func (r *coachRepository) UpdateProfile(profile *models.CoachProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update coach profile: %w", err)
	}
	return nil
}

func (r *coachRepository) ListApproved(limit, offset int) ([]models.CoachProfile, int64, error) {
	var profiles []models.CoachProfile
	var total int64

	q := r.db.Model(&models.CoachProfile{}).Where("status = ?", models.CoachStatusApproved)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count coaches: %w", err)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&profiles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coaches: %w", err)
	}
	return profiles, total, nil
}
