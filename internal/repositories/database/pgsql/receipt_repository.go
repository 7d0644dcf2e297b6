package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	"github.com/SscSPs/coop_savings_app/internal/models"
	"github.com/SscSPs/coop_savings_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const receiptColumns = `receipt_number, transaction_id, member_code, member_name, account_type, transaction_type,
	amount, balance_after, issued_at, body`

type PgxReceiptRepository struct {
	BaseRepository
}

// newPgxReceiptRepository creates a new repository for issued receipts.
func newPgxReceiptRepository(pool *pgxpool.Pool) portsrepo.ReceiptRepositoryFacade {
	return &PgxReceiptRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReceiptRepository implements portsrepo.ReceiptRepositoryFacade
var _ portsrepo.ReceiptRepositoryFacade = (*PgxReceiptRepository)(nil)

// SaveReceipt stores a receipt unless the transaction already has one, then
// returns whichever receipt is stored.
func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) (*domain.Receipt, error) {
	m := mapping.ToModelReceipt(receipt)
	query := `
		INSERT INTO receipts (transaction_id, member_code, member_name, account_type, transaction_type, amount, balance_after, issued_at, body)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (transaction_id) DO NOTHING;
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.TransactionID,
		m.MemberCode,
		m.MemberName,
		m.AccountType,
		m.TransactionType,
		m.Amount,
		m.BalanceAfter,
		m.IssuedAt,
		m.Body,
	)
	if err != nil {
		return nil, wrapDBError(err, "failed to save receipt for transaction %s", m.TransactionID)
	}
	return r.FindReceiptByTransactionID(ctx, m.TransactionID)
}

// FindReceiptByTransactionID retrieves the receipt issued for a transaction.
func (r *PgxReceiptRepository) FindReceiptByTransactionID(ctx context.Context, transactionID string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE transaction_id = $1;`
	var m models.Receipt
	err := r.conn(ctx).QueryRow(ctx, query, transactionID).Scan(
		&m.ReceiptNumber,
		&m.TransactionID,
		&m.MemberCode,
		&m.MemberName,
		&m.AccountType,
		&m.TransactionType,
		&m.Amount,
		&m.BalanceAfter,
		&m.IssuedAt,
		&m.Body,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapDBError(err, "failed to find receipt for transaction %s", transactionID)
	}
	receipt := mapping.ToDomainReceipt(m)
	return &receipt, nil
}
