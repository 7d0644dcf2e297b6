package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MemberContribution is one eligible member's contributions for a fiscal year.
type MemberContribution struct {
	MemberID      string          `json:"memberID"`
	MemberCode    string          `json:"memberCode"`
	FullName      string          `json:"fullName"`
	Contributions decimal.Decimal `json:"contributions"`
	// SurplusAccountID is empty when the member has no surplus account.
	SurplusAccountID string `json:"surplusAccountID,omitempty"`
}

// SurplusShare is a member's computed part of the distributable surplus.
type SurplusShare struct {
	MemberContribution
	Share decimal.Decimal `json:"share"`
}

// HasSurplusAccount reports whether the share can be posted.
func (s SurplusShare) HasSurplusAccount() bool {
	return s.SurplusAccountID != ""
}

// SurplusAllocation is the full breakdown of a distribution.
type SurplusAllocation struct {
	FiscalYear         int             `json:"fiscalYear"`
	TotalDistributable decimal.Decimal `json:"totalDistributable"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	TotalShares        decimal.Decimal `json:"totalShares"`
	RoundingDifference decimal.Decimal `json:"roundingDifference"`
	Members            []SurplusShare  `json:"members"`
}

// AllocateSurplus splits total among contributors proportionally to their
// contributions. Each share is rounded half-up to cents; the residue
// total - sum(shares) is reported as RoundingDifference, not redistributed.
// Members with a non-positive contribution are dropped.
func AllocateSurplus(fiscalYear int, total decimal.Decimal, contributions []MemberContribution) (SurplusAllocation, error) {
	if total.IsNegative() {
		return SurplusAllocation{}, fmt.Errorf("%w: distributable surplus cannot be negative", apperrors.ErrValidation)
	}
	if !total.Equal(total.Round(CentPlaces)) {
		return SurplusAllocation{}, fmt.Errorf("%w: distributable surplus %s has more than %d decimal places", apperrors.ErrValidation, total, CentPlaces)
	}

	alloc := SurplusAllocation{
		FiscalYear:         fiscalYear,
		TotalDistributable: total,
		TotalContributions: decimal.Zero,
		TotalShares:        decimal.Zero,
		RoundingDifference: decimal.Zero,
		Members:            []SurplusShare{},
	}

	participants := make([]MemberContribution, 0, len(contributions))
	for _, c := range contributions {
		if !c.Contributions.IsPositive() {
			continue
		}
		participants = append(participants, c)
		alloc.TotalContributions = alloc.TotalContributions.Add(c.Contributions)
	}
	if len(participants) == 0 {
		alloc.RoundingDifference = total
		return alloc, nil
	}

	for _, c := range participants {
		// Multiply before dividing so the only rounding is the final one.
		share := c.Contributions.Mul(total).DivRound(alloc.TotalContributions, CentPlaces)
		alloc.Members = append(alloc.Members, SurplusShare{MemberContribution: c, Share: share})
		alloc.TotalShares = alloc.TotalShares.Add(share)
	}
	alloc.RoundingDifference = total.Sub(alloc.TotalShares)
	return alloc, nil
}

// DistributionSummary is the persisted summary of an executed distribution.
// At most one exists per (cooperative, fiscal year).
type DistributionSummary struct {
	DistributionID     string          `json:"distributionID"`
	CooperativeID      string          `json:"cooperativeID"`
	FiscalYear         int             `json:"fiscalYear"`
	TotalDistributable decimal.Decimal `json:"totalDistributable"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	TotalDistributed   decimal.Decimal `json:"totalDistributed"`
	RoundingDifference decimal.Decimal `json:"roundingDifference"`
	MembersReceiving   int             `json:"membersReceiving"`
	Notes              string          `json:"notes"`
	ExecutedAt         time.Time       `json:"executedAt"`
	ExecutedBy         string          `json:"executedBy"`
}

// DistributionResult is returned by an executed distribution.
type DistributionResult struct {
	Distribution DistributionSummary `json:"distribution"`
	Allocation   SurplusAllocation   `json:"allocation"`
	Transactions []Transaction       `json:"transactions"`
	// SkippedMembers had a positive share but no surplus account.
	SkippedMembers []string `json:"skippedMembers"`
}

// ContributionCandidate is a member considered for a distribution, before eligibility is applied.
type ContributionCandidate struct {
	Member           Member
	Contributions    decimal.Decimal
	SurplusAccountID string
}
