package models

import (
	"github.com/shopspring/decimal"
)

// AccountType is the stored purpose of a member account.
type AccountType string

// Account represents a row of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	MemberID       string          `db:"member_id"`
	AccountType    AccountType     `db:"account_type"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	AuditFields
}
