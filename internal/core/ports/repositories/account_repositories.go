package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByMemberAndType retrieves the member's account of the given type.
	FindAccountByMemberAndType(ctx context.Context, memberID string, accountType domain.AccountType) (*domain.Account, error)

	// ListAccountsByMember retrieves every account of a member.
	ListAccountsByMember(ctx context.Context, memberID string) ([]domain.Account, error)

	// FindBalanceMismatches compares every stored balance with the sum of its completed transactions.
	FindBalanceMismatches(ctx context.Context) ([]domain.BalanceMismatch, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccounts persists new accounts in one batch.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error
}

// AccountTransactionSupport defines operations that must run inside a unit of work
type AccountTransactionSupport interface {
	// FindAccountForUpdate selects an account and locks its row.
	FindAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByMemberForUpdate selects and locks every account of a member.
	FindAccountsByMemberForUpdate(ctx context.Context, memberID string) ([]domain.Account, error)

	// UpdateAccountBalance adds delta to the stored balance and returns the new balance.
	UpdateAccountBalance(ctx context.Context, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
