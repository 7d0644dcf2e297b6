package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/dto"
	"github.com/google/uuid"
)

// withdrawalService gates member withdrawals behind staff review.
type withdrawalService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	withdrawalRepo portsrepo.WithdrawalRequestRepositoryFacade
	accountRepo    portsrepo.AccountReader
	memberRepo     portsrepo.MemberReader
	ledger         portssvc.LedgerPosterSvc
}

// NewWithdrawalService creates a new withdrawal request workflow.
func NewWithdrawalService(
	txManager portsrepo.TransactionManager,
	withdrawalRepo portsrepo.WithdrawalRequestRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	memberRepo portsrepo.MemberReader,
	ledger portssvc.LedgerPosterSvc,
	options ...ServiceOption,
) portssvc.WithdrawalSvcFacade {
	return &withdrawalService{
		BaseService:    newBaseService(options...),
		txManager:      txManager,
		withdrawalRepo: withdrawalRepo,
		accountRepo:    accountRepo,
		memberRepo:     memberRepo,
		ledger:         ledger,
	}
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

// CreateWithdrawalRequest opens a pending request against the member's savings account.
// The balance check here is advisory; approval checks again under the account lock.
func (s *withdrawalService) CreateWithdrawalRequest(ctx context.Context, memberID string, req dto.CreateWithdrawalRequestRequest, actor string) (*domain.WithdrawalRequest, error) {
	accountType, err := domain.ParseAccountType(req.AccountType, "")
	if err != nil {
		return nil, err
	}
	if accountType == "" {
		return nil, fmt.Errorf("%w: account type is required", apperrors.ErrValidation)
	}
	if accountType != domain.Savings {
		return nil, fmt.Errorf("%w: withdrawal requests can only be made from savings, not %s", apperrors.ErrValidation, accountType)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.Amount.Equal(req.Amount.Round(domain.CentPlaces)) {
		return nil, fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrValidation, req.Amount, domain.CentPlaces)
	}

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: member %s", apperrors.ErrNotFound, memberID)
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, fmt.Errorf("%w: member %s is inactive", apperrors.ErrInvalidStatus, member.MemberCode)
	}
	acc, err := s.accountRepo.FindAccountByMemberAndType(ctx, memberID, accountType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: member %s has no %s account", apperrors.ErrNotFound, member.MemberCode, accountType)
		}
		return nil, err
	}
	if !acc.CanDebit(req.Amount) {
		return nil, fmt.Errorf("%w: requested %s but %s account holds %s",
			apperrors.ErrInsufficientFunds, req.Amount.StringFixed(domain.CentPlaces), accountType, acc.CurrentBalance.StringFixed(domain.CentPlaces))
	}

	now := s.now()
	request := domain.WithdrawalRequest{
		RequestID:   uuid.NewString(),
		MemberID:    member.MemberID,
		AccountID:   acc.AccountID,
		AccountType: accountType,
		Amount:      req.Amount,
		MemberNote:  strings.TrimSpace(req.Note),
		Status:      domain.RequestPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	if err := s.withdrawalRepo.SaveWithdrawalRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save withdrawal request", slog.String("member_id", memberID))
		return nil, err
	}

	s.metrics.ObserveWithdrawalRequest(string(domain.RequestPending))
	s.LogInfo(ctx, "Withdrawal request created",
		slog.String("request_id", request.RequestID),
		slog.String("member_id", request.MemberID),
		slog.String("amount", request.Amount.String()))

	if s.notifier != nil {
		s.sideEffects.Dispatch(ctx, "notify_staff", func(ctx context.Context) error {
			return s.notifier.NotifyStaffWithdrawalRequested(ctx, request)
		}, slog.String("request_id", request.RequestID))
	}
	return &request, nil
}

// ApproveWithdrawalRequest posts the withdrawal and resolves the request in one unit of work.
func (s *withdrawalService) ApproveWithdrawalRequest(ctx context.Context, requestID string, reviewerID string, notes string) (*domain.WithdrawalRequest, error) {
	var resolved domain.WithdrawalRequest
	var txn *domain.Transaction
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.lockPending(ctx, requestID)
		if err != nil {
			return err
		}

		now := s.now()
		txn, err = s.ledger.PostTransaction(ctx, domain.Posting{
			AccountID:       req.AccountID,
			TransactionType: domain.Withdrawal,
			Amount:          req.Amount.Neg(),
			FiscalYear:      domain.FiscalYearFor(now),
			Description:     fmt.Sprintf("Approved withdrawal request %s", req.RequestID),
			Actor:           reviewerID,
		})
		if err != nil {
			return err
		}

		if err := req.Approve(reviewerID, notes, txn.TransactionID, now); err != nil {
			return err
		}
		if err := s.withdrawalRepo.UpdateWithdrawalRequestResolution(ctx, *req); err != nil {
			return err
		}
		resolved = *req
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to approve withdrawal request", slog.String("request_id", requestID))
		return nil, err
	}

	s.metrics.ObserveWithdrawalRequest(string(domain.RequestApproved))
	s.LogInfo(ctx, "Withdrawal request approved",
		slog.String("request_id", requestID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reviewer_id", reviewerID))

	s.issueReceipts(ctx, *txn)
	s.notifyResolved(ctx, resolved)
	return &resolved, nil
}

// RejectWithdrawalRequest resolves the request without touching the ledger.
func (s *withdrawalService) RejectWithdrawalRequest(ctx context.Context, requestID string, reviewerID string, notes string) (*domain.WithdrawalRequest, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, fmt.Errorf("%w: rejection notes are required", apperrors.ErrValidation)
	}

	var resolved domain.WithdrawalRequest
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.lockPending(ctx, requestID)
		if err != nil {
			return err
		}
		if err := req.Reject(reviewerID, notes, s.now()); err != nil {
			return err
		}
		if err := s.withdrawalRepo.UpdateWithdrawalRequestResolution(ctx, *req); err != nil {
			return err
		}
		resolved = *req
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to reject withdrawal request", slog.String("request_id", requestID))
		return nil, err
	}

	s.metrics.ObserveWithdrawalRequest(string(domain.RequestRejected))
	s.LogInfo(ctx, "Withdrawal request rejected", slog.String("request_id", requestID), slog.String("reviewer_id", reviewerID))

	s.notifyResolved(ctx, resolved)
	return &resolved, nil
}

// lockPending locks the request row and checks it still awaits review.
func (s *withdrawalService) lockPending(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	req, err := s.withdrawalRepo.FindWithdrawalRequestForUpdate(ctx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: withdrawal request %s", apperrors.ErrNotFound, requestID)
		}
		return nil, err
	}
	if !req.IsPending() {
		return nil, fmt.Errorf("%w: withdrawal request %s is %s", apperrors.ErrInvalidStatus, requestID, req.Status)
	}
	return req, nil
}

// notifyResolved tells the member and closes the staff inbox entries.
func (s *withdrawalService) notifyResolved(ctx context.Context, req domain.WithdrawalRequest) {
	if s.notifier == nil {
		return
	}
	s.sideEffects.Dispatch(ctx, "notify_member", func(ctx context.Context) error {
		return s.notifier.NotifyMemberWithdrawalResolved(ctx, req)
	}, slog.String("request_id", req.RequestID))
	s.sideEffects.Dispatch(ctx, "mark_processed", func(ctx context.Context) error {
		return s.notifier.MarkWithdrawalRequestNotificationsProcessed(ctx, req.RequestID)
	}, slog.String("request_id", req.RequestID))
}

// GetWithdrawalRequest retrieves a request by ID.
func (s *withdrawalService) GetWithdrawalRequest(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	req, err := s.withdrawalRepo.FindWithdrawalRequestByID(ctx, requestID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get withdrawal request", slog.String("request_id", requestID))
		return nil, err
	}
	return req, nil
}

// ListWithdrawalRequests retrieves a filtered page of requests, newest first.
func (s *withdrawalService) ListWithdrawalRequests(ctx context.Context, params dto.ListWithdrawalRequestsParams) ([]domain.WithdrawalRequest, error) {
	filter := params.ToWithdrawalRequestFilter()
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *filter.Status)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	return s.withdrawalRepo.ListWithdrawalRequests(ctx, filter, limit, params.Offset)
}
