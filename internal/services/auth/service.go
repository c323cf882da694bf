// Package auth handles registration, email verification and the token
// lifecycle: access/refresh JWT pairs invalidated by a per-user token
// version.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"
	"fluidit/internal/repositories"
	"fluidit/internal/utils"
	"fluidit/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	VerifyOTP(email, otp string) error
	ResendOTP(email string) error
	Login(email, phone, password string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
	ChangePassword(userID uint, oldPassword, newPassword string) error
}

type service struct {
	userRepo  repositories.UserRepository
	wallets   WalletProvisioner
	otpSender OTPSender
	now       func() time.Time
}

// NewService creates the auth service. otpSender may be nil, in which case
// verification codes are only logged.
func NewService(userRepo repositories.UserRepository, wallets WalletProvisioner, otpSender OTPSender) Service {
	if userRepo == nil {
		panic("user repository is required")
	}
	if wallets == nil {
		panic("wallet provisioner is required")
	}
	return &service{
		userRepo:  userRepo,
		wallets:   wallets,
		otpSender: otpSender,
		now:       time.Now,
	}
}

// Register creates the account, provisions its wallet and emails a
// verification code. The account stays unverified until VerifyOTP succeeds.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	v := validation.New()
	v.Registration(input.Username, input.Email, input.Phone, input.Password, input.Name)
	if !v.Valid() {
		return nil, apperr.ErrValidation.WithMessage(v.Summary())
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !registrableRoles[role] {
		return nil, apperr.ErrValidation.WithMessage("invalid role")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	otp, err := utils.GenerateOTP(otpLength)
	if err != nil {
		return nil, err
	}
	otpExpiry := s.now().Add(OTPTTL)

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		Password:     string(hashed),
		Name:         input.Name,
		Role:         role,
		OTP:          otp,
		OTPExpiresAt: &otpExpiry,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.ErrConflict.WithMessage("email, phone or username already registered")
		}
		return nil, err
	}

	wallet, err := s.provisionWallet(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.WalletID = &wallet.ID
	user.Wallet = wallet
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	s.sendOTP(user, otp)
	return user, nil
}

// VerifyOTP confirms the emailed code and marks the account verified.
func (s *service) VerifyOTP(email, otp string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return apperr.ErrNotFound.WithMessage("account not found")
	}
	if user.IsVerified {
		return nil
	}
	if user.OTP == "" || user.OTP != otp {
		return apperr.ErrValidation.WithMessage(ErrInvalidOTP.Error())
	}
	if user.OTPExpiresAt == nil || s.now().After(*user.OTPExpiresAt) {
		return apperr.ErrValidation.WithMessage(ErrOTPExpired.Error())
	}

	user.IsVerified = true
	user.OTP = ""
	user.OTPExpiresAt = nil
	return s.userRepo.Update(user)
}

// ResendOTP issues a fresh code for an unverified account.
func (s *service) ResendOTP(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return apperr.ErrNotFound.WithMessage("account not found")
	}
	if user.IsVerified {
		return apperr.ErrConflict.WithMessage("account already verified")
	}

	otp, err := utils.GenerateOTP(otpLength)
	if err != nil {
		return err
	}
	expiry := s.now().Add(OTPTTL)
	user.OTP = otp
	user.OTPExpiresAt = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	s.sendOTP(user, otp)
	return nil
}

// Login authenticates by email or phone and returns the user with a fresh
// token pair.
func (s *service) Login(email, phone, password string) (*models.User, string, string, error) {
	user, err := s.getUserByIdentifier(email, phone)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		user.FailedLoginAttempts++
		if err := s.userRepo.Update(user); err != nil {
			log.Printf("failed to record login attempt for user %d: %v", user.ID, err)
		}
		return nil, "", "", ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, "", "", ErrNotVerified
	}

	user.FailedLoginAttempts = 0
	user.LastLoginAt = s.now()
	if err := s.userRepo.Update(user); err != nil {
		log.Printf("failed to record login for user %d: %v", user.ID, err)
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

// RefreshTokens exchanges a valid refresh token for a new pair. A token
// version bump (logout, password change) invalidates outstanding tokens.
func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if user.TokenVersion != claims.TokenVersion {
		return "", "", ErrInvalidToken
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
}

func (s *service) Logout(userID uint) error {
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	v := validation.New()
	v.Password("password", newPassword)
	if !v.Valid() {
		return apperr.ErrValidation.WithMessage(v.Summary())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashed)
	user.TokenVersion++ // Invalidate existing tokens
	return s.userRepo.Update(user)
}

// provisionWallet mints a sequential wallet ID and creates the wallet,
// retrying past ID collisions from concurrent sign-ups.
func (s *service) provisionWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	year := s.now().UTC().Year()
	for attempt := int64(0); attempt < 3; attempt++ {
		walletID := fmt.Sprintf("FLD%d%04d", year, count+attempt)
		wallet, err := s.wallets.CreateWallet(ctx, userID, walletID)
		if err == nil {
			return wallet, nil
		}
		if !errors.Is(err, apperr.ErrConflict) {
			return nil, err
		}
	}
	return nil, apperr.ErrConflict.WithMessage("could not allocate a wallet ID")
}

func (s *service) sendOTP(user *models.User, otp string) {
	if s.otpSender == nil {
		log.Printf("no OTP sender configured, code for user %d not sent", user.ID)
		return
	}
	if err := s.otpSender.SendVerificationOTP(user.Email, user.Name, otp); err != nil {
		log.Printf("failed to send verification code to user %d: %v", user.ID, err)
	}
}

func (s *service) getUserByIdentifier(email, phone string) (*models.User, error) {
	if email != "" {
		return s.userRepo.GetByEmail(email)
	}
	return s.userRepo.GetByPhone(phone)
}
