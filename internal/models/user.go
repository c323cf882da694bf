package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser   = "user"
	RoleCoach  = "coach"
	RoleDriver = "driver"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model
	Username            string `gorm:"uniqueIndex;not null"`
	Email               string `gorm:"uniqueIndex;not null"`
	Phone               string `gorm:"uniqueIndex;not null"`
	Password            string `gorm:"not null" json:"-"`
	Name                string
	ProfileImage        string
	Role                string  `gorm:"default:'user'"` // user, coach, driver, admin
	Status              string  `gorm:"default:'active'"`
	WalletID            *uint   `gorm:"unique;default:null"`
	Wallet              *Wallet `gorm:"foreignKey:WalletID"`
	IsVerified          bool    `gorm:"default:false"`
	OTP                 string  `json:"-"`
	OTPExpiresAt        *time.Time
	TokenVersion        int `gorm:"default:1"`
	FailedLoginAttempts int `gorm:"default:0"`
	LastLoginAt         time.Time
}
