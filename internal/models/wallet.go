package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet statuses
const (
	WalletStatusActive = "active"
	WalletStatusLocked = "locked"
)

// Default daily limits, applied when a wallet is created without overrides.
const (
	DefaultMaxDailyPayment = 100000.0
	DefaultMaxDailyTopup   = 50000.0
	DefaultMaxDailyTxCount = 50
)

type Wallet struct {
	ID           uint    `gorm:"primarykey"`
	WalletID     string  `gorm:"uniqueIndex;not null"` // external id, FLD prefixed
	UserID       uint    `gorm:"uniqueIndex;not null"`
	Balance      float64 `gorm:"default:0"`
	Status       string  `gorm:"default:'active'"`
	StatusReason string  `gorm:"default:''"`

	// Per-wallet daily limit configuration. Zero means "use default",
	// normalized in BeforeCreate.
	MaxDailyPayment float64 `gorm:"default:100000"`
	MaxDailyTopup   float64 `gorm:"default:50000"`
	MaxDailyTxCount int     `gorm:"default:50"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Balance always starts at 0, regardless of what the caller set.
	w.Balance = 0.0
	if w.Status == "" {
		w.Status = WalletStatusActive
	}
	if w.MaxDailyPayment <= 0 {
		w.MaxDailyPayment = DefaultMaxDailyPayment
	}
	if w.MaxDailyTopup <= 0 {
		w.MaxDailyTopup = DefaultMaxDailyTopup
	}
	if w.MaxDailyTxCount <= 0 {
		w.MaxDailyTxCount = DefaultMaxDailyTxCount
	}
	return nil
}
