package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypePayment    = "payment"
	TransactionTypeTopup      = "topup"
	TransactionTypeRefund     = "refund"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeReceived   = "received"
)

// Transaction statuses. pending may move to completed, failed or cancelled;
// the other three are terminal.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

// CancelWindow is how long a pending payment stays cancellable.
const CancelWindow = 5 * time.Minute

// Transaction is an immutable ledger record. Only Status ever changes after
// creation, and only along the pending -> terminal edges.
type Transaction struct {
	ID                uint      `gorm:"primarykey"`
	Reference         string    `gorm:"uniqueIndex;not null"` // external, unguessable id
	Type              string    `gorm:"not null;index"`
	Status            string    `gorm:"not null;default:'pending';index"`
	SenderID          uint      `gorm:"not null;index"`
	RecipientID       *uint     `gorm:"index"` // nil for top-ups and withdrawals
	SenderWalletID    string    `gorm:"index"`
	RecipientWalletID *string   `gorm:"index"`
	Amount            float64   `gorm:"not null"`
	Fee               float64   `gorm:"default:0"`
	Description       string    `gorm:"size:200"`
	Note              string    `gorm:"size:500"`
	Metadata          JSON      `gorm:"type:jsonb"`
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

// CanBeCancelled reports whether the record is still inside the cancel
// window: pending payments younger than CancelWindow.
func (t *Transaction) CanBeCancelled(now time.Time) bool {
	return t.Status == TransactionStatusPending &&
		t.Type == TransactionTypePayment &&
		now.Sub(t.CreatedAt) < CancelWindow
}

// Involves reports whether the given user is a participant.
func (t *Transaction) Involves(userID uint) bool {
	if t.SenderID == userID {
		return true
	}
	return t.RecipientID != nil && *t.RecipientID == userID
}
