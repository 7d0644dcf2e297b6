package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	"github.com/SscSPs/coop_savings_app/internal/models"
	"github.com/SscSPs/coop_savings_app/internal/utils/mapping"
	"github.com/SscSPs/coop_savings_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionSelect = `
	SELECT t.transaction_id, t.account_id, a.member_id, a.account_type, t.transaction_type, t.amount,
	       t.fiscal_year, t.status, t.description, t.receipt_ref, t.distribution_id, t.balance_after,
	       t.created_at, t.created_by
	FROM transactions t
	JOIN accounts a ON a.account_id = t.account_id
`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.AccountID,
		&t.MemberID,
		&t.AccountType,
		&t.TransactionType,
		&t.Amount,
		&t.FiscalYear,
		&t.Status,
		&t.Description,
		&t.ReceiptRef,
		&t.DistributionID,
		&t.BalanceAfter,
		&t.CreatedAt,
		&t.CreatedBy,
	)
	return t, err
}

// SaveTransaction appends a transaction row. Rows are never updated afterwards.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	t := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (
			transaction_id, account_id, transaction_type, amount, fiscal_year, status,
			description, receipt_ref, distribution_id, balance_after, created_at, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		t.TransactionID,
		t.AccountID,
		t.TransactionType,
		t.Amount,
		t.FiscalYear,
		t.Status,
		t.Description,
		t.ReceiptRef,
		t.DistributionID,
		t.BalanceAfter,
		t.CreatedAt,
		t.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, t.TransactionID)
		}
		return wrapDBError(err, "failed to save transaction %s", t.TransactionID)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	t, err := scanTransaction(r.conn(ctx).QueryRow(ctx, transactionSelect+` WHERE t.transaction_id = $1;`, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapDBError(err, "failed to find transaction %s", transactionID)
	}
	txn := mapping.ToDomainTransaction(t)
	return &txn, nil
}

// ListTransactionsByAccount retrieves a page of an account's history, newest first.
// The cursor is the (created_at, transaction_id) of the last row of the previous page.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	conditions := []string{"t.account_id = $1"}
	args := []any{accountID}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.FiscalYear != nil {
		conditions = append(conditions, "t.fiscal_year = "+next(*filter.FiscalYear))
	}
	if filter.Month != nil {
		conditions = append(conditions, "EXTRACT(MONTH FROM t.created_at AT TIME ZONE 'UTC') = "+next(*filter.Month))
	}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		conditions = append(conditions, fmt.Sprintf("(t.created_at, t.transaction_id) < (%s, %s)", next(lastCreatedAt), next(lastID)))
	}

	query := transactionSelect +
		" WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY t.created_at DESC, t.transaction_id DESC LIMIT " + next(fetchLimit) + ";"

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, wrapDBError(err, "failed to query transactions for account %s", accountID)
	}
	defer rows.Close()

	results := make([]domain.Transaction, 0, fetchLimit)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, wrapDBError(err, "failed to scan transaction row for account %s", accountID)
		}
		results = append(results, mapping.ToDomainTransaction(t))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapDBError(err, "error iterating transaction rows for account %s", accountID)
	}

	var nextTokenVal *string
	if len(results) > limit {
		results = results[:limit]
		last := results[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
	}
	return results, nextTokenVal, nil
}

// ListTransactionsByDistribution retrieves the payouts of a surplus distribution.
func (r *PgxTransactionRepository) ListTransactionsByDistribution(ctx context.Context, distributionID string) ([]domain.Transaction, error) {
	rows, err := r.conn(ctx).Query(ctx, transactionSelect+` WHERE t.distribution_id = $1 ORDER BY a.member_id;`, distributionID)
	if err != nil {
		return nil, wrapDBError(err, "failed to query transactions of distribution %s", distributionID)
	}
	defer rows.Close()

	results := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, wrapDBError(err, "failed to scan distribution transaction row")
		}
		results = append(results, mapping.ToDomainTransaction(t))
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "error iterating distribution transaction rows")
	}
	return results, nil
}
