package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	PermissionWalletRead       = "wallet:read"
	PermissionWalletWrite      = "wallet:write"
	PermissionTransactionRead  = "transaction:read"
	PermissionTransactionWrite = "transaction:write"
	PermissionTrackerWrite     = "tracker:write"
	PermissionReadAdmin        = "admin:read"
	PermissionWriteAdmin       = "admin:write"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	base := []string{
		PermissionWalletRead,
		PermissionWalletWrite,
		PermissionTransactionRead,
		PermissionTransactionWrite,
	}
	switch role {
	case RoleAdmin:
		return append(base, PermissionTrackerWrite, PermissionReadAdmin, PermissionWriteAdmin)
	case RoleDriver:
		return append(base, PermissionTrackerWrite)
	case RoleUser, RoleCoach:
		return base
	default:
		return []string{}
	}
}
