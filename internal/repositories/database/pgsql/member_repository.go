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
)

const memberColumns = `member_id, cooperative_id, full_name, national_id, member_code, consecutive, code_year,
	is_active, affiliation_date, last_liquidation_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxMemberRepository struct {
	BaseRepository
}

// newPgxMemberRepository creates a new repository for member data.
func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMemberRepository implements portsrepo.MemberRepositoryFacade
var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

// scanMember scans the memberColumns followed by any extra destinations.
func scanMember(row pgx.Row, extra ...any) (domain.Member, error) {
	var m models.Member
	dest := []any{
		&m.MemberID,
		&m.CooperativeID,
		&m.FullName,
		&m.NationalID,
		&m.MemberCode,
		&m.Consecutive,
		&m.CodeYear,
		&m.IsActive,
		&m.AffiliationDate,
		&m.LastLiquidationDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return domain.Member{}, err
	}
	return mapping.ToDomainMember(m), nil
}

// SaveMember inserts a new member.
func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		INSERT INTO members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.MemberID,
		m.CooperativeID,
		m.FullName,
		m.NationalID,
		m.MemberCode,
		m.Consecutive,
		m.CodeYear,
		m.IsActive,
		m.AffiliationDate,
		m.LastLiquidationDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: a member with national ID %s already exists", apperrors.ErrDuplicate, m.NationalID)
		}
		return wrapDBError(err, "failed to save member %s", m.MemberID)
	}
	return nil
}

// FindMemberByID retrieves a member by its ID.
func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`
	return r.findOne(ctx, r.conn(ctx), query, memberID)
}

// FindMemberForUpdate retrieves a member and locks its row until the transaction ends.
func (r *PgxMemberRepository) FindMemberForUpdate(ctx context.Context, memberID string) (*domain.Member, error) {
	tx, err := r.txConn(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1 FOR UPDATE;`
	return r.findOne(ctx, tx, query, memberID)
}

func (r *PgxMemberRepository) findOne(ctx context.Context, q querier, query, memberID string) (*domain.Member, error) {
	member, err := scanMember(q.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapDBError(err, "failed to find member %s", memberID)
	}
	return &member, nil
}

// ListMembers retrieves a page of the cooperative's members ordered by member code.
func (r *PgxMemberRepository) ListMembers(ctx context.Context, cooperativeID string, activeOnly bool, limit int, offset int) ([]domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE cooperative_id = $1 AND ($2 = FALSE OR is_active)
		ORDER BY code_year, consecutive
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.conn(ctx).Query(ctx, query, cooperativeID, activeOnly, limit, offset)
	if err != nil {
		return nil, wrapDBError(err, "failed to list members")
	}
	defer rows.Close()

	members := make([]domain.Member, 0, limit)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, wrapDBError(err, "failed to scan member row")
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "error iterating member rows")
	}
	return members, nil
}

// MarkMemberLiquidated deactivates a member and records the liquidation date.
func (r *PgxMemberRepository) MarkMemberLiquidated(ctx context.Context, memberID string, liquidatedAt time.Time, userID string, now time.Time) error {
	query := `
		UPDATE members
		SET is_active = FALSE, last_liquidation_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE member_id = $1;
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, memberID, liquidatedAt, now, userID)
	if err != nil {
		return wrapDBError(err, "failed to mark member %s liquidated", memberID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// NextMemberConsecutive claims the next consecutive for (cooperative, year).
// A missing sequence row is seeded from the highest consecutive already issued,
// so codes stay unique even for members imported before the sequence existed.
func (r *PgxMemberRepository) NextMemberConsecutive(ctx context.Context, cooperativeID string, year int) (int, error) {
	query := `
		INSERT INTO member_code_sequences (cooperative_id, code_year, last_value)
		VALUES ($1, $2, COALESCE((SELECT MAX(consecutive) FROM members WHERE cooperative_id = $1 AND code_year = $2), 0) + 1)
		ON CONFLICT (cooperative_id, code_year)
		DO UPDATE SET last_value = member_code_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int
	if err := r.conn(ctx).QueryRow(ctx, query, cooperativeID, year).Scan(&next); err != nil {
		return 0, wrapDBError(err, "failed to allocate member consecutive for %s/%d", cooperativeID, year)
	}
	return next, nil
}
