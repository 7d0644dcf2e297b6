package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	memberRepo  portsrepo.MemberReader
}

// NewAccountService creates a new account read service.
func NewAccountService(accountRepo portsrepo.AccountReader, memberRepo portsrepo.MemberReader, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options...),
		accountRepo: accountRepo,
		memberRepo:  memberRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves an account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		return nil, err
	}
	return acc, nil
}

// ListAccountsByMember retrieves every account of an existing member.
func (s *accountService) ListAccountsByMember(ctx context.Context, memberID string) ([]domain.Account, error) {
	if _, err := s.memberRepo.FindMemberByID(ctx, memberID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: member %s", apperrors.ErrNotFound, memberID)
		}
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccountsByMember(ctx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list member accounts", slog.String("member_id", memberID))
		return nil, err
	}
	return accounts, nil
}
