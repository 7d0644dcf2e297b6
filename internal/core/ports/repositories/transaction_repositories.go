package repositories

import (
	"context"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
)

// TransactionReader defines read operations for ledger transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a page of an account's history, newest first, using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactionsByAccount(ctx context.Context, accountID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByDistribution retrieves the payouts of a surplus distribution.
	ListTransactionsByDistribution(ctx context.Context, distributionID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger transactions
type TransactionWriter interface {
	// SaveTransaction appends an immutable transaction row.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
