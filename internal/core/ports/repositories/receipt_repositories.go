package repositories

import (
	"context"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
)

// ReceiptRepositoryFacade stores issued receipts
type ReceiptRepositoryFacade interface {
	// SaveReceipt stores a receipt unless one already exists for the transaction,
	// and returns the stored receipt with its number.
	SaveReceipt(ctx context.Context, receipt domain.Receipt) (*domain.Receipt, error)

	// FindReceiptByTransactionID retrieves the receipt issued for a transaction.
	FindReceiptByTransactionID(ctx context.Context, transactionID string) (*domain.Receipt, error)
}
