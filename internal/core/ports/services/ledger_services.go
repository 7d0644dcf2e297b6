package services

import (
	"context"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/dto"
)

// LedgerPosterSvc is the single way balances change.
type LedgerPosterSvc interface {
	// PostTransaction appends one completed transaction and moves the account balance by
	// its signed amount in the same unit of work. It joins an enclosing unit if ctx carries one.
	PostTransaction(ctx context.Context, posting domain.Posting) (*domain.Transaction, error)
}

// LedgerBoundarySvc defines the deposit and withdrawal operations staff call directly.
type LedgerBoundarySvc interface {
	// PostDeposit credits the member's account of the requested type.
	PostDeposit(ctx context.Context, memberID string, req dto.PostDepositRequest, actor string) (*domain.Transaction, error)

	// PostWithdrawal debits the member's account of the requested type.
	PostWithdrawal(ctx context.Context, memberID string, req dto.PostWithdrawalRequest, actor string) (*domain.Transaction, error)
}

// LedgerReaderSvc defines read operations for ledger history
type LedgerReaderSvc interface {
	// GetTransaction retrieves a transaction by ID.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListAccountTransactions retrieves a page of an account's history.
	ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerPosterSvc
	LedgerBoundarySvc
	LedgerReaderSvc
}

// ReconciliationSvc recomputes balances from the transaction log.
type ReconciliationSvc interface {
	// Reconcile returns every account whose stored balance differs from its ledger sum.
	Reconcile(ctx context.Context) ([]domain.BalanceMismatch, error)
}
