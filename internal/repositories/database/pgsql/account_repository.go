package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	"github.com/SscSPs/coop_savings_app/internal/models"
	"github.com/SscSPs/coop_savings_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, member_id, account_type, current_balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.MemberID,
		&m.AccountType,
		&m.CurrentBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccounts inserts the accounts in a single batch.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, a := range accounts {
		m := mapping.ToModelAccount(a)
		batch.Queue(query,
			m.AccountID,
			m.MemberID,
			m.AccountType,
			m.CurrentBalance,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := r.conn(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for _, a := range accounts {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: member %s already has a %s account", apperrors.ErrDuplicate, a.MemberID, a.AccountType)
			}
			return wrapDBError(err, "failed to save account %s", a.AccountID)
		}
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return r.findOne(ctx, r.conn(ctx), query, accountID)
}

// FindAccountByMemberAndType retrieves the member's account of the given type.
func (r *PgxAccountRepository) FindAccountByMemberAndType(ctx context.Context, memberID string, accountType domain.AccountType) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE member_id = $1 AND account_type = $2;`
	return r.findOne(ctx, r.conn(ctx), query, memberID, string(accountType))
}

// FindAccountForUpdate retrieves an account and locks its row until the transaction ends.
func (r *PgxAccountRepository) FindAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	tx, err := r.txConn(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	return r.findOne(ctx, tx, query, accountID)
}

func (r *PgxAccountRepository) findOne(ctx context.Context, q querier, query string, args ...any) (*domain.Account, error) {
	m, err := scanAccount(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapDBError(err, "failed to find account %v", args)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListAccountsByMember retrieves every account of a member.
func (r *PgxAccountRepository) ListAccountsByMember(ctx context.Context, memberID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE member_id = $1 ORDER BY account_type;`
	return r.list(ctx, r.conn(ctx), query, memberID)
}

// FindAccountsByMemberForUpdate retrieves and locks every account of a member.
// Rows are locked in account_id order.
func (r *PgxAccountRepository) FindAccountsByMemberForUpdate(ctx context.Context, memberID string) ([]domain.Account, error) {
	tx, err := r.txConn(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE member_id = $1 ORDER BY account_id FOR UPDATE;`
	return r.list(ctx, tx, query, memberID)
}

func (r *PgxAccountRepository) list(ctx context.Context, q querier, query, memberID string) ([]domain.Account, error) {
	rows, err := q.Query(ctx, query, memberID)
	if err != nil {
		return nil, wrapDBError(err, "failed to list accounts for member %s", memberID)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, wrapDBError(err, "failed to scan account row")
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "error iterating account rows")
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// UpdateAccountBalance adds delta to the stored balance and returns the new balance.
func (r *PgxAccountRepository) UpdateAccountBalance(ctx context.Context, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1
		RETURNING current_balance;
	`
	var balance decimal.Decimal
	err := r.conn(ctx).QueryRow(ctx, query, accountID, delta, now, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, wrapDBError(err, "failed to update balance of account %s", accountID)
	}
	return balance, nil
}

// FindBalanceMismatches compares every stored balance with the sum of the
// account's completed transactions.
func (r *PgxAccountRepository) FindBalanceMismatches(ctx context.Context) ([]domain.BalanceMismatch, error) {
	query := `
		SELECT a.account_id, a.member_id, a.account_type, a.current_balance,
		       COALESCE(SUM(t.amount) FILTER (WHERE t.status = 'completed'), 0) AS ledger_balance
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.account_id
		GROUP BY a.account_id
		HAVING a.current_balance <> COALESCE(SUM(t.amount) FILTER (WHERE t.status = 'completed'), 0)
		ORDER BY a.account_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, wrapDBError(err, "failed to reconcile balances")
	}
	defer rows.Close()

	mismatches := []domain.BalanceMismatch{}
	for rows.Next() {
		var m domain.BalanceMismatch
		var accountType string
		if err := rows.Scan(&m.AccountID, &m.MemberID, &accountType, &m.StoredBalance, &m.LedgerBalance); err != nil {
			return nil, wrapDBError(err, "failed to scan reconciliation row")
		}
		m.AccountType = domain.AccountType(accountType)
		mismatches = append(mismatches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "error iterating reconciliation rows")
	}
	return mismatches, nil
}
