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
	"github.com/shopspring/decimal"
)

// memberService owns the member lifecycle: codes, affiliation and exit liquidation.
type memberService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	memberRepo  portsrepo.MemberRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	ledger      portssvc.LedgerPosterSvc
}

// NewMemberService creates a new member registry service.
func NewMemberService(
	txManager portsrepo.TransactionManager,
	memberRepo portsrepo.MemberRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	ledger portssvc.LedgerPosterSvc,
	options ...ServiceOption,
) portssvc.MemberSvcFacade {
	return &memberService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		memberRepo:  memberRepo,
		accountRepo: accountRepo,
		ledger:      ledger,
	}
}

var _ portssvc.MemberSvcFacade = (*memberService)(nil)

// AllocateMemberCode claims the next code of the cooperative for the current year.
func (s *memberService) AllocateMemberCode(ctx context.Context, cooperativeID string) (string, error) {
	var code string
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		_, _, c, err := s.allocate(ctx, cooperativeID)
		code = c
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate member code", slog.String("cooperative_id", cooperativeID))
		return "", err
	}
	return code, nil
}

func (s *memberService) allocate(ctx context.Context, cooperativeID string) (consecutive, year int, code string, err error) {
	year = s.now().Year()
	consecutive, err = s.memberRepo.NextMemberConsecutive(ctx, cooperativeID, year)
	if err != nil {
		return 0, 0, "", err
	}
	return consecutive, year, domain.FormatMemberCode(consecutive, year), nil
}

// GetMemberByID retrieves a member by ID.
func (s *memberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	m, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get member", slog.String("member_id", memberID))
		return nil, err
	}
	return m, nil
}

// ListMembers retrieves a page of the cooperative's members.
func (s *memberService) ListMembers(ctx context.Context, cooperativeID string, params dto.ListMembersParams) ([]domain.Member, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	return s.memberRepo.ListMembers(ctx, cooperativeID, params.ActiveOnly, limit, offset)
}

// Affiliate registers a member with a fresh code and four zero-balance accounts.
// A rolled-back affiliation gives its code back.
func (s *memberService) Affiliate(ctx context.Context, cooperativeID string, req dto.AffiliateMemberRequest, actor string) (*domain.MemberAffiliation, error) {
	fullName := strings.TrimSpace(req.FullName)
	nationalID := strings.TrimSpace(req.NationalID)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", apperrors.ErrValidation)
	}
	if nationalID == "" {
		return nil, fmt.Errorf("%w: national ID is required", apperrors.ErrValidation)
	}

	var affiliation domain.MemberAffiliation
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		consecutive, year, code, err := s.allocate(ctx, cooperativeID)
		if err != nil {
			return err
		}

		now := s.now()
		audit := domain.AuditFields{CreatedAt: now, CreatedBy: actor, LastUpdatedAt: now, LastUpdatedBy: actor}
		affiliationDate := now
		if req.AffiliationDate != nil {
			affiliationDate = req.AffiliationDate.UTC()
		}
		member := domain.Member{
			MemberID:        uuid.NewString(),
			CooperativeID:   cooperativeID,
			FullName:        fullName,
			NationalID:      nationalID,
			MemberCode:      code,
			Consecutive:     consecutive,
			CodeYear:        year,
			IsActive:        true,
			AffiliationDate: affiliationDate,
			AuditFields:     audit,
		}
		if err := s.memberRepo.SaveMember(ctx, member); err != nil {
			return err
		}

		accounts := make([]domain.Account, 0, len(domain.MemberAccountTypes))
		for _, t := range domain.MemberAccountTypes {
			accounts = append(accounts, domain.Account{
				AccountID:      uuid.NewString(),
				MemberID:       member.MemberID,
				AccountType:    t,
				CurrentBalance: decimal.Zero,
				AuditFields:    audit,
			})
		}
		if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
			return err
		}
		affiliation = domain.MemberAffiliation{Member: member, Accounts: accounts}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Affiliation failed", slog.String("cooperative_id", cooperativeID))
		return nil, err
	}

	s.LogInfo(ctx, "Member affiliated",
		slog.String("member_id", affiliation.Member.MemberID),
		slog.String("member_code", affiliation.Member.MemberCode))
	return &affiliation, nil
}

// Liquidate pays out every account of an active member and deactivates it.
// Each non-zero account gets one liquidation posting that brings it to exactly zero.
func (s *memberService) Liquidate(ctx context.Context, memberID string, req dto.LiquidateMemberRequest, actor string) (*domain.LiquidationResult, error) {
	var result domain.LiquidationResult
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := s.memberRepo.FindMemberForUpdate(ctx, memberID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: member %s", apperrors.ErrNotFound, memberID)
			}
			return err
		}
		if !member.IsActive {
			return fmt.Errorf("%w: member %s is already inactive", apperrors.ErrInvalidStatus, member.MemberCode)
		}

		accounts, err := s.accountRepo.FindAccountsByMemberForUpdate(ctx, memberID)
		if err != nil {
			return err
		}

		now := s.now()
		description := "Exit liquidation"
		if notes := strings.TrimSpace(req.Notes); notes != "" {
			description += ": " + notes
		}
		txns := []domain.Transaction{}
		for _, acc := range accounts {
			if acc.CurrentBalance.IsZero() {
				continue
			}
			txn, err := s.ledger.PostTransaction(ctx, domain.Posting{
				AccountID:       acc.AccountID,
				TransactionType: domain.Liquidation,
				Amount:          acc.CurrentBalance.Neg(),
				FiscalYear:      domain.FiscalYearFor(now),
				Description:     description,
				Actor:           actor,
				AllowOverdraft:  true,
			})
			if err != nil {
				return fmt.Errorf("failed to liquidate %s account: %w", acc.AccountType, err)
			}
			txns = append(txns, *txn)
		}

		if err := s.memberRepo.MarkMemberLiquidated(ctx, memberID, now, actor, now); err != nil {
			return err
		}
		member.IsActive = false
		member.LastLiquidationDate = &now
		member.LastUpdatedAt = now
		member.LastUpdatedBy = actor

		result = domain.LiquidationResult{
			Member:       *member,
			Transactions: txns,
			TotalPaidOut: sumAmounts(txns).Neg(),
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Liquidation failed", slog.String("member_id", memberID))
		return nil, err
	}

	s.LogInfo(ctx, "Member liquidated",
		slog.String("member_id", memberID),
		slog.String("total_paid_out", result.TotalPaidOut.String()),
		slog.Int("postings", len(result.Transactions)))
	s.issueReceipts(ctx, result.Transactions...)
	return &result, nil
}
