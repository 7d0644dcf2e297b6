package dto

import (
	"time"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SurplusDistributionRequest defines the input to preview or execute a distribution.
type SurplusDistributionRequest struct {
	FiscalYear  int             `json:"fiscalYear" binding:"required,min=2000,max=2999"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required,gt=0"`
	Notes       string          `json:"notes" binding:"max=1000"`
}

// SurplusShareResponse is one member line of a distribution breakdown.
type SurplusShareResponse struct {
	MemberID          string          `json:"memberID"`
	MemberCode        string          `json:"memberCode"`
	FullName          string          `json:"fullName"`
	Contributions     decimal.Decimal `json:"contributions"`
	Share             decimal.Decimal `json:"share"`
	HasSurplusAccount bool            `json:"hasSurplusAccount"`
}

// SurplusPreviewResponse is the read-only breakdown of a distribution.
type SurplusPreviewResponse struct {
	FiscalYear         int                    `json:"fiscalYear"`
	TotalDistributable decimal.Decimal        `json:"totalDistributable"`
	TotalContributions decimal.Decimal        `json:"totalContributions"`
	TotalShares        decimal.Decimal        `json:"totalShares"`
	RoundingDifference decimal.Decimal        `json:"roundingDifference"`
	Members            []SurplusShareResponse `json:"members"`
}

// SurplusDistributionResponse defines the data returned for an executed distribution.
type SurplusDistributionResponse struct {
	DistributionID     string          `json:"distributionID"`
	FiscalYear         int             `json:"fiscalYear"`
	TotalDistributable decimal.Decimal `json:"totalDistributable"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	TotalDistributed   decimal.Decimal `json:"totalDistributed"`
	RoundingDifference decimal.Decimal `json:"roundingDifference"`
	MembersReceiving   int             `json:"membersReceiving"`
	Notes              string          `json:"notes,omitempty"`
	ExecutedAt         time.Time       `json:"executedAt"`
	ExecutedBy         string          `json:"executedBy"`
}

// ExecuteDistributionResponse is returned when a distribution is executed.
type ExecuteDistributionResponse struct {
	SurplusDistributionResponse
	Results        []TransactionResponse `json:"results"`
	SkippedMembers []string              `json:"skippedMembers"`
}

// ListDistributionsResponse wraps the list of distributions.
type ListDistributionsResponse struct {
	Distributions []SurplusDistributionResponse `json:"distributions"`
}

// ToSurplusPreviewResponse converts an allocation to its DTO.
func ToSurplusPreviewResponse(a *domain.SurplusAllocation) SurplusPreviewResponse {
	members := make([]SurplusShareResponse, len(a.Members))
	for i, m := range a.Members {
		members[i] = SurplusShareResponse{
			MemberID:          m.MemberID,
			MemberCode:        m.MemberCode,
			FullName:          m.FullName,
			Contributions:     m.Contributions,
			Share:             m.Share,
			HasSurplusAccount: m.HasSurplusAccount(),
		}
	}
	return SurplusPreviewResponse{
		FiscalYear:         a.FiscalYear,
		TotalDistributable: a.TotalDistributable,
		TotalContributions: a.TotalContributions,
		TotalShares:        a.TotalShares,
		RoundingDifference: a.RoundingDifference,
		Members:            members,
	}
}

// ToSurplusDistributionResponse converts a distribution summary to its DTO.
func ToSurplusDistributionResponse(d *domain.DistributionSummary) SurplusDistributionResponse {
	return SurplusDistributionResponse{
		DistributionID:     d.DistributionID,
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

// ToExecuteDistributionResponse converts an execution result to its DTO.
func ToExecuteDistributionResponse(r *domain.DistributionResult) ExecuteDistributionResponse {
	skipped := r.SkippedMembers
	if skipped == nil {
		skipped = []string{}
	}
	return ExecuteDistributionResponse{
		SurplusDistributionResponse: ToSurplusDistributionResponse(&r.Distribution),
		Results:                     ToTransactionResponses(r.Transactions),
		SkippedMembers:              skipped,
	}
}

// ToListDistributionsResponse converts a slice of distributions to the list DTO.
func ToListDistributionsResponse(ds []domain.DistributionSummary) ListDistributionsResponse {
	res := make([]SurplusDistributionResponse, len(ds))
	for i := range ds {
		res[i] = ToSurplusDistributionResponse(&ds[i])
	}
	return ListDistributionsResponse{Distributions: res}
}
