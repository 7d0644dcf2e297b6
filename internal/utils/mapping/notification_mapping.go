package mapping

import (
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/models"
)

// ToModelNotification converts a domain Notification to a model Notification
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		Recipient:      string(d.Recipient),
		MemberID:       d.MemberID,
		Kind:           string(d.Kind),
		ReferenceID:    d.ReferenceID,
		Message:        d.Message,
		Processed:      d.Processed,
		CreatedAt:      d.CreatedAt,
		ProcessedAt:    d.ProcessedAt,
	}
}

// ToDomainNotification converts a model Notification to a domain Notification
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		Recipient:      domain.NotificationRecipient(m.Recipient),
		MemberID:       m.MemberID,
		Kind:           domain.NotificationKind(m.Kind),
		ReferenceID:    m.ReferenceID,
		Message:        m.Message,
		Processed:      m.Processed,
		CreatedAt:      m.CreatedAt,
		ProcessedAt:    m.ProcessedAt,
	}
}

// ToModelReceipt converts a domain Receipt to a model Receipt
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptNumber:   d.ReceiptNumber,
		TransactionID:   d.TransactionID,
		MemberCode:      d.MemberCode,
		MemberName:      d.MemberName,
		AccountType:     string(d.AccountType),
		TransactionType: string(d.TransactionType),
		Amount:          d.Amount,
		BalanceAfter:    d.BalanceAfter,
		IssuedAt:        d.IssuedAt,
		Body:            d.Body,
	}
}

// ToDomainReceipt converts a model Receipt to a domain Receipt
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptNumber:   m.ReceiptNumber,
		TransactionID:   m.TransactionID,
		MemberCode:      m.MemberCode,
		MemberName:      m.MemberName,
		AccountType:     domain.AccountType(m.AccountType),
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		BalanceAfter:    m.BalanceAfter,
		IssuedAt:        m.IssuedAt,
		Body:            m.Body,
	}
}
