package services

import (
	"context"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/dto"
)

// WithdrawalWorkflowSvc drives the approval gate in front of member withdrawals.
type WithdrawalWorkflowSvc interface {
	// CreateWithdrawalRequest opens a pending request on the member's savings account.
	CreateWithdrawalRequest(ctx context.Context, memberID string, req dto.CreateWithdrawalRequestRequest, actor string) (*domain.WithdrawalRequest, error)

	// ApproveWithdrawalRequest posts the withdrawal and resolves the request in one unit of work.
	ApproveWithdrawalRequest(ctx context.Context, requestID string, reviewerID string, notes string) (*domain.WithdrawalRequest, error)

	// RejectWithdrawalRequest resolves the request without a ledger effect. Notes are mandatory.
	RejectWithdrawalRequest(ctx context.Context, requestID string, reviewerID string, notes string) (*domain.WithdrawalRequest, error)
}

// WithdrawalReaderSvc defines read operations for withdrawal requests
type WithdrawalReaderSvc interface {
	GetWithdrawalRequest(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error)
	ListWithdrawalRequests(ctx context.Context, params dto.ListWithdrawalRequestsParams) ([]domain.WithdrawalRequest, error)
}

// WithdrawalSvcFacade combines all withdrawal service interfaces
type WithdrawalSvcFacade interface {
	WithdrawalWorkflowSvc
	WithdrawalReaderSvc
}
