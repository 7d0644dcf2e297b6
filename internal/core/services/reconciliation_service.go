package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
)

// reconciliationService checks stored balances against the transaction log.
type reconciliationService struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(accountRepo portsrepo.AccountReader, options ...ServiceOption) portssvc.ReconciliationSvc {
	return &reconciliationService{
		BaseService: newBaseService(options...),
		accountRepo: accountRepo,
	}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

// Reconcile returns every account whose stored balance differs from its ledger sum.
func (s *reconciliationService) Reconcile(ctx context.Context) ([]domain.BalanceMismatch, error) {
	mismatches, err := s.accountRepo.FindBalanceMismatches(ctx)
	if err != nil {
		s.LogError(ctx, err, "Reconciliation query failed")
		return nil, err
	}
	for _, m := range mismatches {
		s.LogWarn(ctx, "Balance drift detected",
			slog.String("account_id", m.AccountID),
			slog.String("member_id", m.MemberID),
			slog.String("stored", m.StoredBalance.String()),
			slog.String("ledger", m.LedgerBalance.String()),
			slog.String("difference", m.Difference().String()))
	}
	if len(mismatches) == 0 {
		s.LogInfo(ctx, "Reconciliation found every balance consistent")
	}
	return mismatches, nil
}
