package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalRequest represents a row of the withdrawal_requests table.
type WithdrawalRequest struct {
	RequestID     string          `db:"request_id"`
	MemberID      string          `db:"member_id"`
	AccountID     string          `db:"account_id"`
	AccountType   AccountType     `db:"account_type"`
	Amount        decimal.Decimal `db:"amount"`
	MemberNote    string          `db:"member_note"`
	Status        string          `db:"status"`
	ReviewedBy    *string         `db:"reviewed_by"`
	ReviewNotes   *string         `db:"review_notes"`
	ReviewedAt    *time.Time      `db:"reviewed_at"`
	TransactionID *string         `db:"transaction_id"`
	AuditFields
}
