package mapping

import (
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		MemberID:        d.MemberID,
		AccountType:     models.AccountType(d.AccountType),
		TransactionType: string(d.TransactionType),
		Amount:          d.Amount,
		FiscalYear:      d.FiscalYear,
		Status:          string(d.Status),
		Description:     d.Description,
		ReceiptRef:      d.ReceiptRef,
		DistributionID:  d.DistributionID,
		BalanceAfter:    d.BalanceAfter,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		MemberID:        m.MemberID,
		AccountType:     domain.AccountType(m.AccountType),
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		FiscalYear:      m.FiscalYear,
		Status:          domain.TransactionStatus(m.Status),
		Description:     m.Description,
		ReceiptRef:      m.ReceiptRef,
		DistributionID:  m.DistributionID,
		BalanceAfter:    m.BalanceAfter,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
