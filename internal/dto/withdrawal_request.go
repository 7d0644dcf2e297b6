package dto

import (
	"time"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWithdrawalRequestRequest defines the data a member submits to request a withdrawal.
type CreateWithdrawalRequestRequest struct {
	AccountType string          `json:"accountType" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Note        string          `json:"note" binding:"max=500"`
}

// ReviewWithdrawalRequestRequest carries the reviewer's notes on approval or rejection.
type ReviewWithdrawalRequestRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// ListWithdrawalRequestsParams defines query parameters for listing requests.
type ListWithdrawalRequestsParams struct {
	Status   *string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	MemberID *string `form:"memberID"`
	Limit    int     `form:"limit,default=20" binding:"min=1,max=200"`
	Offset   int     `form:"offset,default=0" binding:"min=0"`
}

// WithdrawalRequestResponse defines the data returned for a withdrawal request.
type WithdrawalRequestResponse struct {
	RequestID     string                         `json:"requestID"`
	MemberID      string                         `json:"memberID"`
	AccountID     string                         `json:"accountID"`
	AccountType   domain.AccountType             `json:"accountType"`
	Amount        decimal.Decimal                `json:"amount"`
	MemberNote    string                         `json:"memberNote,omitempty"`
	Status        domain.WithdrawalRequestStatus `json:"status"`
	ReviewedBy    *string                        `json:"reviewedBy,omitempty"`
	ReviewNotes   *string                        `json:"reviewNotes,omitempty"`
	ReviewedAt    *time.Time                     `json:"reviewedAt,omitempty"`
	TransactionID *string                        `json:"transactionID,omitempty"`
	CreatedAt     time.Time                      `json:"createdAt"`
}

// ListWithdrawalRequestsResponse wraps the list of requests.
type ListWithdrawalRequestsResponse struct {
	Requests []WithdrawalRequestResponse `json:"requests"`
}

// ToWithdrawalRequestResponse converts a domain.WithdrawalRequest to its DTO.
func ToWithdrawalRequestResponse(r *domain.WithdrawalRequest) WithdrawalRequestResponse {
	return WithdrawalRequestResponse{
		RequestID:     r.RequestID,
		MemberID:      r.MemberID,
		AccountID:     r.AccountID,
		AccountType:   r.AccountType,
		Amount:        r.Amount,
		MemberNote:    r.MemberNote,
		Status:        r.Status,
		ReviewedBy:    r.ReviewedBy,
		ReviewNotes:   r.ReviewNotes,
		ReviewedAt:    r.ReviewedAt,
		TransactionID: r.TransactionID,
		CreatedAt:     r.CreatedAt,
	}
}

// ToListWithdrawalRequestsResponse converts a slice of requests to the list DTO.
func ToListWithdrawalRequestsResponse(reqs []domain.WithdrawalRequest) ListWithdrawalRequestsResponse {
	res := make([]WithdrawalRequestResponse, len(reqs))
	for i := range reqs {
		res[i] = ToWithdrawalRequestResponse(&reqs[i])
	}
	return ListWithdrawalRequestsResponse{Requests: res}
}

// ToWithdrawalRequestFilter converts list params to the domain filter.
func (p ListWithdrawalRequestsParams) ToWithdrawalRequestFilter() domain.WithdrawalRequestFilter {
	var f domain.WithdrawalRequestFilter
	if p.Status != nil {
		s := domain.WithdrawalRequestStatus(*p.Status)
		f.Status = &s
	}
	if p.MemberID != nil && *p.MemberID != "" {
		f.MemberID = p.MemberID
	}
	return f
}
