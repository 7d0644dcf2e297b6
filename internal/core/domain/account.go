package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountType defines the purpose of a member account.
type AccountType string

const (
	Savings       AccountType = "savings"
	Contributions AccountType = "contributions"
	Surplus       AccountType = "surplus"
	Affiliation   AccountType = "affiliation"
)

// MemberAccountTypes lists the accounts opened for every member at affiliation.
var MemberAccountTypes = []AccountType{Savings, Contributions, Surplus, Affiliation}

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Savings, Contributions, Surplus, Affiliation:
		return true
	}
	return false
}

// ParseAccountType normalizes s and validates it. An empty string yields def.
func ParseAccountType(s string, def AccountType) (AccountType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def, nil
	}
	t := AccountType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, s)
	}
	return t, nil
}

// Account is a member's balance for one purpose.
// CurrentBalance is a projection of the account's completed transactions and
// is only changed by the ledger inside the same unit of work that appends them.
type Account struct {
	AccountID      string          `json:"accountID"`
	MemberID       string          `json:"memberID"`
	AccountType    AccountType     `json:"accountType"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AuditFields
}

// CanDebit reports whether amount (positive) can be withdrawn without going negative.
func (a Account) CanDebit(amount decimal.Decimal) bool {
	return a.CurrentBalance.GreaterThanOrEqual(amount)
}

// BalanceMismatch is an account whose stored balance differs from its transaction log.
type BalanceMismatch struct {
	AccountID     string          `json:"accountID"`
	MemberID      string          `json:"memberID"`
	AccountType   AccountType     `json:"accountType"`
	StoredBalance decimal.Decimal `json:"storedBalance"`
	LedgerBalance decimal.Decimal `json:"ledgerBalance"`
}

// Difference returns stored minus ledger balance.
func (m BalanceMismatch) Difference() decimal.Decimal {
	return m.StoredBalance.Sub(m.LedgerBalance)
}
