package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Notification represents a row of the notifications table.
type Notification struct {
	NotificationID string     `db:"notification_id"`
	Recipient      string     `db:"recipient"`
	MemberID       *string    `db:"member_id"`
	Kind           string     `db:"kind"`
	ReferenceID    string     `db:"reference_id"`
	Message        string     `db:"message"`
	Processed      bool       `db:"processed"`
	CreatedAt      time.Time  `db:"created_at"`
	ProcessedAt    *time.Time `db:"processed_at"`
}

// Receipt represents a row of the receipts table.
type Receipt struct {
	ReceiptNumber   int64           `db:"receipt_number"`
	TransactionID   string          `db:"transaction_id"`
	MemberCode      string          `db:"member_code"`
	MemberName      string          `db:"member_name"`
	AccountType     string          `db:"account_type"`
	TransactionType string          `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	IssuedAt        time.Time       `db:"issued_at"`
	Body            string          `db:"body"`
}
