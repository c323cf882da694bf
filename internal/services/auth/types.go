package auth

import (
	"context"
	"time"

	"fluidit/internal/models"
)

// OTPTTL is how long an emailed verification code stays valid.
const OTPTTL = 10 * time.Minute

const otpLength = 6

// Roles a user may register as. Admins are seeded, never self-registered.
var registrableRoles = map[string]bool{
	models.RoleUser:   true,
	models.RoleCoach:  true,
	models.RoleDriver: true,
}

// RegisterInput is a sign-up request.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// WalletProvisioner creates the wallet that backs a new account.
type WalletProvisioner interface {
	CreateWallet(ctx context.Context, userID uint, walletID string) (*models.Wallet, error)
}

// OTPSender delivers verification codes.
type OTPSender interface {
	SendVerificationOTP(email, name, otp string) error
}
