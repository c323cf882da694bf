package models

import "time"

// Driver tracker entry kinds
const (
	TrackerKindExpense = "expense"
	TrackerKindEarning = "earning"
)

// TrackerEntry is one expense or earning logged by a driver.
type TrackerEntry struct {
	ID        uint      `gorm:"primarykey"`
	UserID    uint      `gorm:"not null;index"`
	Kind      string    `gorm:"not null;index"` // expense or earning
	Category  string    `gorm:"size:50;not null"`
	Amount    float64   `gorm:"not null"`
	Note      string    `gorm:"size:500"`
	EntryDate time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
