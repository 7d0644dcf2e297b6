package repositories

import (
	"context"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
)

// DistributionReader defines read operations for surplus distributions
type DistributionReader interface {
	// FindDistributionByFiscalYear retrieves the distribution executed for (cooperative, fiscal year).
	FindDistributionByFiscalYear(ctx context.Context, cooperativeID string, fiscalYear int) (*domain.DistributionSummary, error)

	// ListDistributions retrieves every distribution of a cooperative, latest fiscal year first.
	ListDistributions(ctx context.Context, cooperativeID string) ([]domain.DistributionSummary, error)

	// ListContributionCandidates returns every member of the cooperative with the sum of its
	// completed contribution deposits for the fiscal year and its surplus account, if any.
	ListContributionCandidates(ctx context.Context, cooperativeID string, fiscalYear int) ([]domain.ContributionCandidate, error)
}

// DistributionWriter defines write operations for surplus distributions
type DistributionWriter interface {
	// SaveDistribution persists the summary. A second summary for the same
	// (cooperative, fiscal year) yields apperrors.ErrDuplicateDistribution.
	SaveDistribution(ctx context.Context, dist domain.DistributionSummary) error
}

// DistributionTransactionSupport defines operations that must run inside a unit of work
type DistributionTransactionSupport interface {
	// LockDistributionYear serializes distributions of (cooperative, fiscal year) until the transaction ends.
	LockDistributionYear(ctx context.Context, cooperativeID string, fiscalYear int) error
}

// DistributionRepositoryFacade combines all distribution repository interfaces
type DistributionRepositoryFacade interface {
	DistributionReader
	DistributionWriter
	DistributionTransactionSupport
}
