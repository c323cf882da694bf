package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	apperr "fluidit/internal/errors"
	"fluidit/internal/models"
	"fluidit/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	mock.Mock
	repositories.UserRepository
}

func (m *mockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByPhone(phone string) (*models.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(user *models.User) error { return m.Called(user).Error(0) }

func (m *mockUserRepo) IncrementTokenVersion(userID uint) error {
	return m.Called(userID).Error(0)
}

func (m *mockUserRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type mockProvisioner struct {
	mock.Mock
}

func (m *mockProvisioner) CreateWallet(ctx context.Context, userID uint, walletID string) (*models.Wallet, error) {
	args := m.Called(ctx, userID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

type mockOTPSender struct {
	mock.Mock
}

func (m *mockOTPSender) SendVerificationOTP(email, name, otp string) error {
	return m.Called(email, name, otp).Error(0)
}

func validInput() RegisterInput {
	return RegisterInput{
		Username: "ade",
		Email:    "ade@example.com",
		Phone:    "+2348012345678",
		Password: "str0ng!pass",
		Name:     "Ade",
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a verified-pending account with a wallet", func(t *testing.T) {
		users := new(mockUserRepo)
		wallets := new(mockProvisioner)
		sender := new(mockOTPSender)
		svc := NewService(users, wallets, sender)

		users.On("Create", mock.Anything).Return(nil)
		users.On("Count").Return(int64(41), nil)
		wallets.On("CreateWallet", mock.Anything, uint(1), mock.MatchedBy(func(id string) bool {
			return strings.HasPrefix(id, "FLD") && strings.HasSuffix(id, "0041")
		})).Return(&models.Wallet{ID: 7, WalletID: "FLD20260041", UserID: 1}, nil)
		users.On("Update", mock.Anything).Return(nil)
		sender.On("SendVerificationOTP", "ade@example.com", "Ade", mock.MatchedBy(func(otp string) bool {
			return len(otp) == 6
		})).Return(nil)

		user, err := svc.Register(ctx, validInput())

		require.NoError(t, err)
		assert.False(t, user.IsVerified)
		assert.NotEqual(t, "str0ng!pass", user.Password, "password must be hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("str0ng!pass")))
		assert.Equal(t, models.RoleUser, user.Role)
		require.NotNil(t, user.WalletID)
		assert.Equal(t, uint(7), *user.WalletID)
		assert.Len(t, user.OTP, 6)
		sender.AssertExpectations(t)
	})

	t.Run("duplicate identity is a conflict", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("Create", mock.Anything).Return(apperr.ErrConflict)

		_, err := svc.Register(ctx, validInput())

		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("invalid input never reaches the repository", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)

		input := validInput()
		input.Email = "not-an-email"
		input.Password = "short"
		_, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, apperr.ErrValidation)
		users.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("admin cannot be self-registered", func(t *testing.T) {
		svc := NewService(new(mockUserRepo), new(mockProvisioner), nil)

		input := validInput()
		input.Role = models.RoleAdmin
		_, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestService_VerifyOTP(t *testing.T) {
	pendingUser := func(otp string, expiry time.Time) *models.User {
		return &models.User{
			Model: gorm.Model{ID: 1}, Email: "ade@example.com",
			OTP: otp, OTPExpiresAt: &expiry,
		}
	}

	t.Run("correct code verifies the account", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByEmail", "ade@example.com").
			Return(pendingUser("123456", time.Now().Add(5*time.Minute)), nil)
		users.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.IsVerified && u.OTP == ""
		})).Return(nil)

		assert.NoError(t, svc.VerifyOTP("ade@example.com", "123456"))
		users.AssertExpectations(t)
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByEmail", "ade@example.com").
			Return(pendingUser("123456", time.Now().Add(5*time.Minute)), nil)

		err := svc.VerifyOTP("ade@example.com", "999999")

		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("expired code is rejected", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByEmail", "ade@example.com").
			Return(pendingUser("123456", time.Now().Add(-time.Minute)), nil)

		err := svc.VerifyOTP("ade@example.com", "123456")

		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("already verified is a no-op", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByEmail", "ade@example.com").
			Return(&models.User{IsVerified: true}, nil)

		assert.NoError(t, svc.VerifyOTP("ade@example.com", "123456"))
		users.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	verifiedUser := func(t *testing.T) *models.User {
		return &models.User{
			Model: gorm.Model{ID: 1}, Email: "ade@example.com",
			Password: hashOf(t, "str0ng!pass"), Role: models.RoleUser,
			IsVerified: true, TokenVersion: 1,
		}
	}

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByEmail", "ade@example.com").Return(verifiedUser(t), nil)
		users.On("Update", mock.Anything).Return(nil)

		user, access, refresh, err := svc.Login("ade@example.com", "", "str0ng!pass")

		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.NotEqual(t, access, refresh)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByEmail", "ade@example.com").Return(verifiedUser(t), nil)
		users.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.FailedLoginAttempts == 1
		})).Return(nil)

		_, _, _, err := svc.Login("ade@example.com", "", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown identifier gets the same answer as a bad password", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByPhone", "+2340000000000").Return(nil, apperr.ErrNotFound)

		_, _, _, err := svc.Login("", "+2340000000000", "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unverified account cannot log in", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		unverified := verifiedUser(t)
		unverified.IsVerified = false
		users.On("GetByEmail", "ade@example.com").Return(unverified, nil)

		_, _, _, err := svc.Login("ade@example.com", "", "str0ng!pass")

		assert.ErrorIs(t, err, ErrNotVerified)
	})
}

func TestService_RefreshTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	login := func(t *testing.T, users *mockUserRepo, user *models.User) string {
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByEmail", user.Email).Return(user, nil).Once()
		users.On("Update", mock.Anything).Return(nil)
		_, _, refresh, err := svc.Login(user.Email, "", "str0ng!pass")
		require.NoError(t, err)
		return refresh
	}

	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		users := new(mockUserRepo)
		user := &models.User{
			Model: gorm.Model{ID: 1}, Email: "ade@example.com",
			Password: hashOf(t, "str0ng!pass"), IsVerified: true, TokenVersion: 1,
		}
		refresh := login(t, users, user)

		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByID", uint(1)).Return(user, nil)

		access, newRefresh, err := svc.RefreshTokens(refresh)

		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("token version bump invalidates old refresh tokens", func(t *testing.T) {
		users := new(mockUserRepo)
		user := &models.User{
			Model: gorm.Model{ID: 1}, Email: "ade@example.com",
			Password: hashOf(t, "str0ng!pass"), IsVerified: true, TokenVersion: 1,
		}
		refresh := login(t, users, user)

		bumped := *user
		bumped.TokenVersion = 2
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByID", uint(1)).Return(&bumped, nil)

		_, _, err := svc.RefreshTokens(refresh)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewService(new(mockUserRepo), new(mockProvisioner), nil)
		_, _, err := svc.RefreshTokens("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_ChangePassword(t *testing.T) {
	t.Run("success bumps the token version", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		user := &models.User{
			Model: gorm.Model{ID: 1}, Password: hashOf(t, "old!password"), TokenVersion: 1,
		}
		users.On("GetByID", uint(1)).Return(user, nil)
		users.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.TokenVersion == 2 &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("new!password")) == nil
		})).Return(nil)

		require.NoError(t, svc.ChangePassword(1, "old!password", "new!password"))
		users.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByID", uint(1)).
			Return(&models.User{Model: gorm.Model{ID: 1}, Password: hashOf(t, "old!password")}, nil)

		err := svc.ChangePassword(1, "not-the-password", "new!password")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("weak new password", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewService(users, new(mockProvisioner), nil)
		users.On("GetByID", uint(1)).
			Return(&models.User{Model: gorm.Model{ID: 1}, Password: hashOf(t, "old!password")}, nil)

		err := svc.ChangePassword(1, "old!password", "weak")

		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}
