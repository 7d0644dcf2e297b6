package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// WithdrawalRequestStatus is the state of a member-initiated withdrawal request.
type WithdrawalRequestStatus string

const (
	RequestPending  WithdrawalRequestStatus = "pending"
	RequestApproved WithdrawalRequestStatus = "approved"
	RequestRejected WithdrawalRequestStatus = "rejected"
)

// IsValid reports whether s is a known request status.
func (s WithdrawalRequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// WithdrawalRequest is a member's request for staff to withdraw from an account.
// An approved request carries exactly one transaction ID; a rejected one carries none.
type WithdrawalRequest struct {
	RequestID     string                  `json:"requestID"`
	MemberID      string                  `json:"memberID"`
	AccountID     string                  `json:"accountID"`
	AccountType   AccountType             `json:"accountType"`
	Amount        decimal.Decimal         `json:"amount"`
	MemberNote    string                  `json:"memberNote"`
	Status        WithdrawalRequestStatus `json:"status"`
	ReviewedBy    *string                 `json:"reviewedBy,omitempty"`
	ReviewNotes   *string                 `json:"reviewNotes,omitempty"`
	ReviewedAt    *time.Time              `json:"reviewedAt,omitempty"`
	TransactionID *string                 `json:"transactionID,omitempty"`
	AuditFields
}

// IsPending reports whether the request still awaits review.
func (r WithdrawalRequest) IsPending() bool {
	return r.Status == RequestPending
}

// Approve moves a pending request to approved, linking the ledger transaction.
func (r *WithdrawalRequest) Approve(reviewerID, notes, transactionID string, at time.Time) error {
	if !r.IsPending() {
		return fmt.Errorf("%w: request %s is %s", apperrors.ErrInvalidStatus, r.RequestID, r.Status)
	}
	if transactionID == "" {
		return fmt.Errorf("%w: approval requires a transaction ID", apperrors.ErrValidation)
	}
	r.Status = RequestApproved
	r.ReviewedBy = &reviewerID
	if notes = strings.TrimSpace(notes); notes != "" {
		r.ReviewNotes = &notes
	}
	r.ReviewedAt = &at
	r.TransactionID = &transactionID
	r.LastUpdatedAt = at
	r.LastUpdatedBy = reviewerID
	return nil
}

// Reject moves a pending request to rejected. Notes are mandatory.
func (r *WithdrawalRequest) Reject(reviewerID, notes string, at time.Time) error {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return fmt.Errorf("%w: rejection notes are required", apperrors.ErrValidation)
	}
	if !r.IsPending() {
		return fmt.Errorf("%w: request %s is %s", apperrors.ErrInvalidStatus, r.RequestID, r.Status)
	}
	r.Status = RequestRejected
	r.ReviewedBy = &reviewerID
	r.ReviewNotes = &notes
	r.ReviewedAt = &at
	r.TransactionID = nil
	r.LastUpdatedAt = at
	r.LastUpdatedBy = reviewerID
	return nil
}

// WithdrawalRequestFilter narrows request listings.
type WithdrawalRequestFilter struct {
	Status   *WithdrawalRequestStatus
	MemberID *string
}
