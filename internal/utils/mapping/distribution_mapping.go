package mapping

import (
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/models"
)

// ToModelSurplusDistribution converts a domain SurplusDistribution to a model SurplusDistribution
func ToModelSurplusDistribution(d domain.DistributionSummary) models.SurplusDistribution {
	return models.SurplusDistribution{
		DistributionID:     d.DistributionID,
		CooperativeID:      d.CooperativeID,
		FiscalYear:         d.FiscalYear,
		TotalDistributable: d.TotalDistributable,
		TotalContributions: d.TotalContributions,
		TotalDistributed:   d.TotalDistributed,
		RoundingDifference: d.RoundingDifference,
		MembersReceiving:   d.MembersReceiving,
		Notes:              d.Notes,
		ExecutedAt:         d.ExecutedAt,
		ExecutedBy:         d.ExecutedBy,
	}
}

// ToDomainSurplusDistribution converts a model SurplusDistribution to a domain SurplusDistribution
func ToDomainSurplusDistribution(m models.SurplusDistribution) domain.DistributionSummary {
	return domain.DistributionSummary{
		DistributionID:     m.DistributionID,
		CooperativeID:      m.CooperativeID,
		FiscalYear:         m.FiscalYear,
		TotalDistributable: m.TotalDistributable,
		TotalContributions: m.TotalContributions,
		TotalDistributed:   m.TotalDistributed,
		RoundingDifference: m.RoundingDifference,
		MembersReceiving:   m.MembersReceiving,
		Notes:              m.Notes,
		ExecutedAt:         m.ExecutedAt,
		ExecutedBy:         m.ExecutedBy,
	}
}
