package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a balance-affecting event.
type TransactionType string

const (
	Deposit             TransactionType = "deposit"
	Withdrawal          TransactionType = "withdrawal"
	SurplusDistribution TransactionType = "surplus_distribution"
	Liquidation         TransactionType = "liquidation"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case Deposit, Withdrawal, SurplusDistribution, Liquidation:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a transaction row.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionReversed  TransactionStatus = "reversed"
)

// Transaction is an immutable record of one balance-affecting event on one account.
// Amount is signed: credits positive, debits negative.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	AccountID       string            `json:"accountID"`
	MemberID        string            `json:"memberID"`
	AccountType     AccountType       `json:"accountType"`
	TransactionType TransactionType   `json:"transactionType"`
	Amount          decimal.Decimal   `json:"amount"`
	FiscalYear      int               `json:"fiscalYear"`
	Status          TransactionStatus `json:"status"`
	Description     string            `json:"description"`
	ReceiptRef      *string           `json:"receiptRef,omitempty"`
	DistributionID  *string           `json:"distributionID,omitempty"`
	BalanceAfter    decimal.Decimal   `json:"balanceAfter"`
	CreatedAt       time.Time         `json:"createdAt"`
	CreatedBy       string            `json:"createdBy"`
}

// Posting is a request to the ledger to append one transaction.
type Posting struct {
	AccountID       string
	TransactionType TransactionType
	Amount          decimal.Decimal // signed
	FiscalYear      int
	Description     string
	ReceiptRef      *string
	DistributionID  *string
	Actor           string
	// AllowOverdraft skips the non-negative balance check. Only exit liquidation sets it.
	AllowOverdraft bool
}

// Validate checks the posting is well formed: a known type, a non-zero amount
// with the sign the type implies, at most cent precision, a fiscal year and an actor.
func (p Posting) Validate() error {
	if p.AccountID == "" {
		return fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}
	if !p.TransactionType.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, p.TransactionType)
	}
	if p.Amount.IsZero() {
		return fmt.Errorf("%w: amount must be non-zero", apperrors.ErrValidation)
	}
	if !p.Amount.Equal(p.Amount.Round(CentPlaces)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrValidation, p.Amount, CentPlaces)
	}
	switch p.TransactionType {
	case Deposit, SurplusDistribution:
		if p.Amount.IsNegative() {
			return fmt.Errorf("%w: %s amount must be positive", apperrors.ErrValidation, p.TransactionType)
		}
	case Withdrawal:
		if p.Amount.IsPositive() {
			return fmt.Errorf("%w: withdrawal amount must be negative", apperrors.ErrValidation)
		}
	}
	if p.FiscalYear <= 0 {
		return fmt.Errorf("%w: fiscal year must be positive", apperrors.ErrValidation)
	}
	if p.Actor == "" {
		return fmt.Errorf("%w: actor is required", apperrors.ErrValidation)
	}
	return nil
}

// IsDebit reports whether the posting reduces the balance.
func (p Posting) IsDebit() bool {
	return p.Amount.IsNegative()
}

// TransactionFilter narrows an account history listing.
type TransactionFilter struct {
	FiscalYear *int
	Month      *int
}

// Validate checks filter ranges.
func (f TransactionFilter) Validate() error {
	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		return fmt.Errorf("%w: month %d out of range 1-12", apperrors.ErrValidation, *f.Month)
	}
	if f.FiscalYear != nil && *f.FiscalYear <= 0 {
		return fmt.Errorf("%w: fiscal year must be positive", apperrors.ErrValidation)
	}
	return nil
}
