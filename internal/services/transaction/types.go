package transaction

import (
	"time"
)

// HistoryItem is one ledger record seen from a single participant's side.
// Amount carries the caller's sign: negative when money left their wallet,
// positive when money arrived.
type HistoryItem struct {
	Reference    string    `json:"reference"`
	Type         string    `json:"type"` // "received" when the caller was the recipient
	Status       string    `json:"status"`
	Amount       float64   `json:"amount"`
	Fee          float64   `json:"fee"`
	Counterparty string    `json:"counterparty,omitempty"` // other party's wallet id
	Description  string    `json:"description,omitempty"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Receipt carries everything a rendered receipt shows, independent of the
// output format.
type Receipt struct {
	Reference         string    `json:"reference"`
	Type              string    `json:"type"`
	Status            string    `json:"status"`
	Amount            float64   `json:"amount"`
	Fee               float64   `json:"fee"`
	Total             float64   `json:"total"`
	SenderName        string    `json:"senderName"`
	SenderWalletID    string    `json:"senderWalletId"`
	RecipientName     string    `json:"recipientName,omitempty"`
	RecipientWalletID string    `json:"recipientWalletId,omitempty"`
	Description       string    `json:"description,omitempty"`
	Note              string    `json:"note,omitempty"`
	Date              time.Time `json:"date"`
}

// MonthlyStats aggregates one calendar month of completed activity.
type MonthlyStats struct {
	Year              int     `json:"year"`
	Month             int     `json:"month"`
	TotalTransactions int64   `json:"totalTransactions"`
	TotalSpent        float64 `json:"totalSpent"`
	TotalTopUps       float64 `json:"totalTopUps"`
	TotalReceived     float64 `json:"totalReceived"`
	TotalWithdrawn    float64 `json:"totalWithdrawn"`
	TotalFees         float64 `json:"totalFees"`
}

// ExportOptions narrows an export request.
type ExportOptions struct {
	From   time.Time
	To     time.Time
	Type   string // empty means all types
	Format string // FormatJSON or FormatCSV
}

// ExportRecord is one normalized row of an export. Both encodings emit the
// same record set.
type ExportRecord struct {
	Reference    string  `json:"reference"`
	Type         string  `json:"type"`
	Direction    string  `json:"direction"` // debit or credit
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
	Fee          float64 `json:"fee"`
	Counterparty string  `json:"counterparty,omitempty"`
	Note         string  `json:"note,omitempty"`
	CreatedAt    string  `json:"createdAt"` // RFC 3339
}
