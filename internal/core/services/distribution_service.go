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

// distributionService computes and pays the annual surplus.
type distributionService struct {
	BaseService
	txManager        portsrepo.TransactionManager
	distributionRepo portsrepo.DistributionRepositoryFacade
	ledger           portssvc.LedgerPosterSvc
}

// NewDistributionService creates a new surplus distribution engine.
func NewDistributionService(
	txManager portsrepo.TransactionManager,
	distributionRepo portsrepo.DistributionRepositoryFacade,
	ledger portssvc.LedgerPosterSvc,
	options ...ServiceOption,
) portssvc.DistributionSvcFacade {
	return &distributionService{
		BaseService:      newBaseService(options...),
		txManager:        txManager,
		distributionRepo: distributionRepo,
		ledger:           ledger,
	}
}

var _ portssvc.DistributionSvcFacade = (*distributionService)(nil)

// PreviewDistribution computes the breakdown without writing anything.
func (s *distributionService) PreviewDistribution(ctx context.Context, cooperativeID string, fiscalYear int, total decimal.Decimal) (*domain.SurplusAllocation, error) {
	if fiscalYear <= 0 {
		return nil, fmt.Errorf("%w: fiscal year must be positive", apperrors.ErrValidation)
	}
	alloc, err := s.allocate(ctx, cooperativeID, fiscalYear, total)
	if err != nil {
		s.logFailure(ctx, err, "Failed to preview distribution", slog.Int("fiscal_year", fiscalYear))
		return nil, err
	}
	return &alloc, nil
}

// ExecuteDistribution posts every share and the summary in one unit of work.
func (s *distributionService) ExecuteDistribution(ctx context.Context, cooperativeID string, req dto.SurplusDistributionRequest, actor string) (*domain.DistributionResult, error) {
	fiscalYear := req.FiscalYear
	if fiscalYear <= 0 {
		return nil, fmt.Errorf("%w: fiscal year must be positive", apperrors.ErrValidation)
	}

	var result domain.DistributionResult
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.distributionRepo.LockDistributionYear(ctx, cooperativeID, fiscalYear); err != nil {
			return err
		}
		_, err := s.distributionRepo.FindDistributionByFiscalYear(ctx, cooperativeID, fiscalYear)
		if err == nil {
			return fmt.Errorf("%w: fiscal year %d", apperrors.ErrDuplicateDistribution, fiscalYear)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		alloc, err := s.allocate(ctx, cooperativeID, fiscalYear, req.TotalAmount)
		if err != nil {
			return err
		}

		distributionID := uuid.NewString()
		res := domain.DistributionResult{Allocation: alloc, Transactions: []domain.Transaction{}, SkippedMembers: []string{}}
		distributed := decimal.Zero
		for _, share := range alloc.Members {
			if share.Share.IsZero() {
				continue
			}
			if !share.HasSurplusAccount() {
				s.LogWarn(ctx, "Member has no surplus account, share not posted",
					slog.String("member_id", share.MemberID),
					slog.String("share", share.Share.String()))
				res.SkippedMembers = append(res.SkippedMembers, share.MemberID)
				continue
			}
			txn, err := s.ledger.PostTransaction(ctx, domain.Posting{
				AccountID:       share.SurplusAccountID,
				TransactionType: domain.SurplusDistribution,
				Amount:          share.Share,
				FiscalYear:      fiscalYear,
				Description:     fmt.Sprintf("Surplus distribution for fiscal year %d", fiscalYear),
				DistributionID:  &distributionID,
				Actor:           actor,
			})
			if err != nil {
				return fmt.Errorf("failed to post share of member %s: %w", share.MemberID, err)
			}
			res.Transactions = append(res.Transactions, *txn)
			distributed = distributed.Add(share.Share)
		}

		res.Distribution = domain.DistributionSummary{
			DistributionID:     distributionID,
			CooperativeID:      cooperativeID,
			FiscalYear:         fiscalYear,
			TotalDistributable: alloc.TotalDistributable,
			TotalContributions: alloc.TotalContributions,
			TotalDistributed:   distributed,
			RoundingDifference: alloc.RoundingDifference,
			MembersReceiving:   len(res.Transactions),
			Notes:              strings.TrimSpace(req.Notes),
			ExecutedAt:         s.now(),
			ExecutedBy:         actor,
		}
		if err := s.distributionRepo.SaveDistribution(ctx, res.Distribution); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Surplus distribution failed", slog.Int("fiscal_year", fiscalYear))
		return nil, err
	}

	distributedFloat, _ := result.Distribution.TotalDistributed.Float64()
	s.metrics.ObserveDistribution(distributedFloat)
	s.LogInfo(ctx, "Surplus distribution executed",
		slog.String("distribution_id", result.Distribution.DistributionID),
		slog.Int("fiscal_year", fiscalYear),
		slog.String("total_distributed", result.Distribution.TotalDistributed.String()),
		slog.String("rounding_difference", result.Distribution.RoundingDifference.String()),
		slog.Int("members_receiving", result.Distribution.MembersReceiving),
		slog.Int("members_skipped", len(result.SkippedMembers)))
	return &result, nil
}

// allocate reads the eligible contributions and splits total across them.
func (s *distributionService) allocate(ctx context.Context, cooperativeID string, fiscalYear int, total decimal.Decimal) (domain.SurplusAllocation, error) {
	candidates, err := s.distributionRepo.ListContributionCandidates(ctx, cooperativeID, fiscalYear)
	if err != nil {
		return domain.SurplusAllocation{}, err
	}
	contributions := make([]domain.MemberContribution, 0, len(candidates))
	for _, c := range candidates {
		if !c.Member.EligibleForSurplus(fiscalYear) {
			continue
		}
		contributions = append(contributions, domain.MemberContribution{
			MemberID:         c.Member.MemberID,
			MemberCode:       c.Member.MemberCode,
			FullName:         c.Member.FullName,
			Contributions:    c.Contributions,
			SurplusAccountID: c.SurplusAccountID,
		})
	}
	return domain.AllocateSurplus(fiscalYear, total, contributions)
}

// GetDistribution retrieves the distribution executed for a fiscal year.
func (s *distributionService) GetDistribution(ctx context.Context, cooperativeID string, fiscalYear int) (*domain.DistributionSummary, error) {
	return s.distributionRepo.FindDistributionByFiscalYear(ctx, cooperativeID, fiscalYear)
}

// ListDistributions retrieves every distribution of the cooperative, latest first.
func (s *distributionService) ListDistributions(ctx context.Context, cooperativeID string) ([]domain.DistributionSummary, error) {
	return s.distributionRepo.ListDistributions(ctx, cooperativeID)
}
