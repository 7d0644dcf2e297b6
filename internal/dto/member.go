package dto

import (
	"time"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AffiliateMemberRequest defines the data needed to register a new member.
type AffiliateMemberRequest struct {
	FullName        string     `json:"fullName" binding:"required,min=2,max=200"`
	NationalID      string     `json:"nationalID" binding:"required,min=5,max=30"`
	AffiliationDate *time.Time `json:"affiliationDate"` // Optional, defaults to today
}

// LiquidateMemberRequest defines the data for an exit liquidation.
type LiquidateMemberRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// MemberResponse defines the data returned for a member.
type MemberResponse struct {
	MemberID            string     `json:"memberID"`
	MemberCode          string     `json:"memberCode"`
	FullName            string     `json:"fullName"`
	NationalID          string     `json:"nationalID"`
	IsActive            bool       `json:"isActive"`
	AffiliationDate     time.Time  `json:"affiliationDate"`
	LastLiquidationDate *time.Time `json:"lastLiquidationDate,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	CreatedBy           string     `json:"createdBy"`
}

// AffiliationResponse is returned when a member is registered.
type AffiliationResponse struct {
	Member   MemberResponse    `json:"member"`
	Accounts []AccountResponse `json:"accounts"`
}

// LiquidationResponse is returned by an exit liquidation.
type LiquidationResponse struct {
	Member       MemberResponse        `json:"member"`
	Transactions []TransactionResponse `json:"transactions"`
	TotalPaidOut decimal.Decimal       `json:"totalPaidOut"`
}

// ListMembersParams defines query parameters for listing members.
type ListMembersParams struct {
	ActiveOnly bool `form:"activeOnly"`
	Limit      int  `form:"limit,default=20" binding:"min=1,max=200"`
	Offset     int  `form:"offset,default=0" binding:"min=0"`
}

// ListMembersResponse wraps the list of members.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// ToMemberResponse converts a domain.Member to MemberResponse DTO
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:            m.MemberID,
		MemberCode:          m.MemberCode,
		FullName:            m.FullName,
		NationalID:          m.NationalID,
		IsActive:            m.IsActive,
		AffiliationDate:     m.AffiliationDate,
		LastLiquidationDate: m.LastLiquidationDate,
		CreatedAt:           m.CreatedAt,
		CreatedBy:           m.CreatedBy,
	}
}

// ToListMembersResponse converts a slice of domain.Member to ListMembersResponse DTO
func ToListMembersResponse(members []domain.Member) ListMembersResponse {
	res := make([]MemberResponse, len(members))
	for i := range members {
		res[i] = ToMemberResponse(&members[i])
	}
	return ListMembersResponse{Members: res}
}

// ToAffiliationResponse converts a domain.MemberAffiliation to AffiliationResponse DTO
func ToAffiliationResponse(a *domain.MemberAffiliation) AffiliationResponse {
	return AffiliationResponse{
		Member:   ToMemberResponse(&a.Member),
		Accounts: ToListAccountResponse(a.Accounts),
	}
}

// ToLiquidationResponse converts a domain.LiquidationResult to LiquidationResponse DTO
func ToLiquidationResponse(r *domain.LiquidationResult) LiquidationResponse {
	return LiquidationResponse{
		Member:       ToMemberResponse(&r.Member),
		Transactions: ToTransactionResponses(r.Transactions),
		TotalPaidOut: r.TotalPaidOut,
	}
}
