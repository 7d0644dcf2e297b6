package mapping

import (
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/models"
)

// ToModelWithdrawalRequest converts a domain WithdrawalRequest to a model WithdrawalRequest
func ToModelWithdrawalRequest(d domain.WithdrawalRequest) models.WithdrawalRequest {
	return models.WithdrawalRequest{
		RequestID:     d.RequestID,
		MemberID:      d.MemberID,
		AccountID:     d.AccountID,
		AccountType:   models.AccountType(d.AccountType),
		Amount:        d.Amount,
		MemberNote:    d.MemberNote,
		Status:        string(d.Status),
		ReviewedBy:    d.ReviewedBy,
		ReviewNotes:   d.ReviewNotes,
		ReviewedAt:    d.ReviewedAt,
		TransactionID: d.TransactionID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWithdrawalRequest converts a model WithdrawalRequest to a domain WithdrawalRequest
func ToDomainWithdrawalRequest(m models.WithdrawalRequest) domain.WithdrawalRequest {
	return domain.WithdrawalRequest{
		RequestID:     m.RequestID,
		MemberID:      m.MemberID,
		AccountID:     m.AccountID,
		AccountType:   domain.AccountType(m.AccountType),
		Amount:        m.Amount,
		MemberNote:    m.MemberNote,
		Status:        domain.WithdrawalRequestStatus(m.Status),
		ReviewedBy:    m.ReviewedBy,
		ReviewNotes:   m.ReviewNotes,
		ReviewedAt:    m.ReviewedAt,
		TransactionID: m.TransactionID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
