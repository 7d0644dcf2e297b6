package services

import (
	"context"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
)

// Notifier writes member and staff alerts to the in-app inbox.
type Notifier interface {
	NotifyStaffWithdrawalRequested(ctx context.Context, req domain.WithdrawalRequest) error
	NotifyMemberWithdrawalResolved(ctx context.Context, req domain.WithdrawalRequest) error
	MarkWithdrawalRequestNotificationsProcessed(ctx context.Context, requestID string) error
	ListNotifications(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error)
}

// ReceiptGenerator issues receipts for posted transactions.
type ReceiptGenerator interface {
	// GenerateReceipt issues the receipt of a transaction. Issuing twice returns the first receipt.
	GenerateReceipt(ctx context.Context, transactionID string) (*domain.Receipt, error)
	GetReceipt(ctx context.Context, transactionID string) (*domain.Receipt, error)
}
