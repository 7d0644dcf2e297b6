package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SurplusDistribution represents a row of the surplus_distributions table.
type SurplusDistribution struct {
	DistributionID     string          `db:"distribution_id"`
	CooperativeID      string          `db:"cooperative_id"`
	FiscalYear         int             `db:"fiscal_year"`
	TotalDistributable decimal.Decimal `db:"total_distributable"`
	TotalContributions decimal.Decimal `db:"total_contributions"`
	TotalDistributed   decimal.Decimal `db:"total_distributed"`
	RoundingDifference decimal.Decimal `db:"rounding_difference"`
	MembersReceiving   int             `db:"members_receiving"`
	Notes              string          `db:"notes"`
	ExecutedAt         time.Time       `db:"executed_at"`
	ExecutedBy         string          `db:"executed_by"`
}
