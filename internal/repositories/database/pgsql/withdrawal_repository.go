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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const withdrawalColumns = `request_id, member_id, account_id, account_type, amount, member_note, status,
	reviewed_by, review_notes, reviewed_at, transaction_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxWithdrawalRequestRepository struct {
	BaseRepository
}

// newPgxWithdrawalRequestRepository creates a new repository for withdrawal requests.
func newPgxWithdrawalRequestRepository(pool *pgxpool.Pool) portsrepo.WithdrawalRequestRepositoryFacade {
	return &PgxWithdrawalRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWithdrawalRequestRepository implements portsrepo.WithdrawalRequestRepositoryFacade
var _ portsrepo.WithdrawalRequestRepositoryFacade = (*PgxWithdrawalRequestRepository)(nil)

func scanWithdrawalRequest(row pgx.Row) (models.WithdrawalRequest, error) {
	var m models.WithdrawalRequest
	err := row.Scan(
		&m.RequestID,
		&m.MemberID,
		&m.AccountID,
		&m.AccountType,
		&m.Amount,
		&m.MemberNote,
		&m.Status,
		&m.ReviewedBy,
		&m.ReviewNotes,
		&m.ReviewedAt,
		&m.TransactionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveWithdrawalRequest inserts a new pending request.
func (r *PgxWithdrawalRequestRepository) SaveWithdrawalRequest(ctx context.Context, req domain.WithdrawalRequest) error {
	m := mapping.ToModelWithdrawalRequest(req)
	query := `
		INSERT INTO withdrawal_requests (` + withdrawalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.RequestID,
		m.MemberID,
		m.AccountID,
		m.AccountType,
		m.Amount,
		m.MemberNote,
		m.Status,
		m.ReviewedBy,
		m.ReviewNotes,
		m.ReviewedAt,
		m.TransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapDBError(err, "failed to save withdrawal request %s", m.RequestID)
	}
	return nil
}

// UpdateWithdrawalRequestResolution stores the outcome of a review.
// Only a pending row is updated, so a request is resolved at most once.
func (r *PgxWithdrawalRequestRepository) UpdateWithdrawalRequestResolution(ctx context.Context, req domain.WithdrawalRequest) error {
	m := mapping.ToModelWithdrawalRequest(req)
	query := `
		UPDATE withdrawal_requests
		SET status = $2, reviewed_by = $3, review_notes = $4, reviewed_at = $5, transaction_id = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE request_id = $1 AND status = 'pending';
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query,
		m.RequestID,
		m.Status,
		m.ReviewedBy,
		m.ReviewNotes,
		m.ReviewedAt,
		m.TransactionID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapDBError(err, "failed to update withdrawal request %s", m.RequestID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: withdrawal request %s is no longer pending", apperrors.ErrInvalidStatus, m.RequestID)
	}
	return nil
}

// FindWithdrawalRequestByID retrieves a request by its ID.
func (r *PgxWithdrawalRequestRepository) FindWithdrawalRequestByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE request_id = $1;`
	return r.findOne(ctx, r.conn(ctx), query, requestID)
}

// FindWithdrawalRequestForUpdate retrieves a request and locks its row until the transaction ends.
func (r *PgxWithdrawalRequestRepository) FindWithdrawalRequestForUpdate(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	tx, err := r.txConn(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE request_id = $1 FOR UPDATE;`
	return r.findOne(ctx, tx, query, requestID)
}

func (r *PgxWithdrawalRequestRepository) findOne(ctx context.Context, q querier, query, requestID string) (*domain.WithdrawalRequest, error) {
	m, err := scanWithdrawalRequest(q.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapDBError(err, "failed to find withdrawal request %s", requestID)
	}
	req := mapping.ToDomainWithdrawalRequest(m)
	return &req, nil
}

// ListWithdrawalRequests retrieves a filtered page of requests, newest first.
func (r *PgxWithdrawalRequestRepository) ListWithdrawalRequests(ctx context.Context, filter domain.WithdrawalRequestFilter, limit int, offset int) ([]domain.WithdrawalRequest, error) {
	conditions := []string{"TRUE"}
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = "+next(string(*filter.Status)))
	}
	if filter.MemberID != nil {
		conditions = append(conditions, "member_id = "+next(*filter.MemberID))
	}
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY created_at DESC, request_id DESC LIMIT ` + next(limit) + ` OFFSET ` + next(offset) + `;`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to list withdrawal requests")
	}
	defer rows.Close()

	requests := []domain.WithdrawalRequest{}
	for rows.Next() {
		m, err := scanWithdrawalRequest(rows)
		if err != nil {
			return nil, wrapDBError(err, "failed to scan withdrawal request row")
		}
		requests = append(requests, mapping.ToDomainWithdrawalRequest(m))
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "error iterating withdrawal request rows")
	}
	return requests, nil
}
