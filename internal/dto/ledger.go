package dto

import (
	"time"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostDepositRequest defines the data for crediting a member account.
type PostDepositRequest struct {
	AccountType string          `json:"accountType" binding:"omitempty,coop_account_type"` // Defaults to savings
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	FiscalYear  int             `json:"fiscalYear" binding:"omitempty,min=2000,max=2999"` // Defaults to the current year
	Description string          `json:"description" binding:"max=500"`
}

// PostWithdrawalRequest defines the data for a staff-initiated withdrawal.
type PostWithdrawalRequest struct {
	AccountType string          `json:"accountType" binding:"omitempty,coop_account_type"` // Defaults to savings
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	FiscalYear  int             `json:"fiscalYear" binding:"omitempty,min=2000,max=2999"`
	ReceiptRef  *string         `json:"receiptRef" binding:"omitempty,max=100"`
	Description string          `json:"description" binding:"max=500"`
}

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	AccountID       string                   `json:"accountID"`
	MemberID        string                   `json:"memberID"`
	AccountType     domain.AccountType       `json:"accountType"`
	TransactionType domain.TransactionType   `json:"transactionType"`
	Amount          decimal.Decimal          `json:"amount"`
	FiscalYear      int                      `json:"fiscalYear"`
	Status          domain.TransactionStatus `json:"status"`
	Description     string                   `json:"description"`
	ReceiptRef      *string                  `json:"receiptRef,omitempty"`
	DistributionID  *string                  `json:"distributionID,omitempty"`
	BalanceAfter    decimal.Decimal          `json:"balanceAfter"`
	CreatedAt       time.Time                `json:"createdAt"`
	CreatedBy       string                   `json:"createdBy"`
}

// PostingResponse is returned by deposit and withdrawal postings.
type PostingResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	NewBalance  decimal.Decimal     `json:"newBalance"`
}

// ListTransactionsParams defines query parameters for an account history.
type ListTransactionsParams struct {
	FiscalYear *int    `form:"fiscalYear"`
	Month      *int    `form:"month"`
	Limit      int     `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken  *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ReconciliationResponse lists accounts whose stored balance drifted from the ledger.
type ReconciliationResponse struct {
	Consistent bool                     `json:"consistent"`
	Mismatches []domain.BalanceMismatch `json:"mismatches"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		MemberID:        txn.MemberID,
		AccountType:     txn.AccountType,
		TransactionType: txn.TransactionType,
		Amount:          txn.Amount,
		FiscalYear:      txn.FiscalYear,
		Status:          txn.Status,
		Description:     txn.Description,
		ReceiptRef:      txn.ReceiptRef,
		DistributionID:  txn.DistributionID,
		BalanceAfter:    txn.BalanceAfter,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToPostingResponse wraps a posted transaction with the resulting balance.
func ToPostingResponse(txn *domain.Transaction) PostingResponse {
	return PostingResponse{
		Transaction: ToTransactionResponse(txn),
		NewBalance:  txn.BalanceAfter,
	}
}
