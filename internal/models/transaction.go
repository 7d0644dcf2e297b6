package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents an immutable row of the transactions table.
// AccountType and MemberID are joined from accounts on read.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	AccountID       string          `db:"account_id"`
	MemberID        string          `db:"member_id"`
	AccountType     AccountType     `db:"account_type"`
	TransactionType string          `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"` // Signed
	FiscalYear      int             `db:"fiscal_year"`
	Status          string          `db:"status"`
	Description     string          `db:"description"`
	ReceiptRef      *string         `db:"receipt_ref"`     // Nullable
	DistributionID  *string         `db:"distribution_id"` // Nullable
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}
