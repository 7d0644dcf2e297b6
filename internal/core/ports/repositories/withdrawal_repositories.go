package repositories

import (
	"context"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
)

// WithdrawalRequestReader defines read operations for withdrawal requests
type WithdrawalRequestReader interface {
	// FindWithdrawalRequestByID retrieves a request by its unique identifier.
	FindWithdrawalRequestByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error)

	// ListWithdrawalRequests retrieves a paginated, filtered list of requests, newest first.
	ListWithdrawalRequests(ctx context.Context, filter domain.WithdrawalRequestFilter, limit int, offset int) ([]domain.WithdrawalRequest, error)
}

// WithdrawalRequestWriter defines write operations for withdrawal requests
type WithdrawalRequestWriter interface {
	// SaveWithdrawalRequest persists a new pending request.
	SaveWithdrawalRequest(ctx context.Context, req domain.WithdrawalRequest) error

	// UpdateWithdrawalRequestResolution stores the status and review stamp of a resolved request.
	UpdateWithdrawalRequestResolution(ctx context.Context, req domain.WithdrawalRequest) error
}

// WithdrawalRequestTransactionSupport defines operations that must run inside a unit of work
type WithdrawalRequestTransactionSupport interface {
	// FindWithdrawalRequestForUpdate selects a request and locks its row.
	FindWithdrawalRequestForUpdate(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error)
}

// WithdrawalRequestRepositoryFacade combines all withdrawal-request repository interfaces
type WithdrawalRequestRepositoryFacade interface {
	WithdrawalRequestReader
	WithdrawalRequestWriter
	WithdrawalRequestTransactionSupport
}
