package services

import (
	"context"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/dto"
	"github.com/shopspring/decimal"
)

// DistributionEngineSvc computes and executes annual surplus distributions.
type DistributionEngineSvc interface {
	// PreviewDistribution computes the breakdown without writing anything.
	PreviewDistribution(ctx context.Context, cooperativeID string, fiscalYear int, total decimal.Decimal) (*domain.SurplusAllocation, error)

	// ExecuteDistribution posts every share and the summary in one unit of work.
	// A second execution for the same fiscal year fails with apperrors.ErrDuplicateDistribution.
	ExecuteDistribution(ctx context.Context, cooperativeID string, req dto.SurplusDistributionRequest, actor string) (*domain.DistributionResult, error)
}

// DistributionReaderSvc defines read operations for executed distributions
type DistributionReaderSvc interface {
	GetDistribution(ctx context.Context, cooperativeID string, fiscalYear int) (*domain.DistributionSummary, error)
	ListDistributions(ctx context.Context, cooperativeID string) ([]domain.DistributionSummary, error)
}

// DistributionSvcFacade combines all distribution service interfaces
type DistributionSvcFacade interface {
	DistributionEngineSvc
	DistributionReaderSvc
}
