package models

import "time"

// Coach application statuses
const (
	CoachStatusPending  = "pending"
	CoachStatusApproved = "approved"
	CoachStatusRejected = "rejected"
)

// CoachProfile holds coach onboarding data for a user.
type CoachProfile struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	Bio       string `gorm:"size:1000"`
	Specialty string `gorm:"size:100"`
	Status    string `gorm:"default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
