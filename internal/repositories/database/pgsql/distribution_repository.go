package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	"github.com/SscSPs/coop_savings_app/internal/models"
	"github.com/SscSPs/coop_savings_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const distributionColumns = `distribution_id, cooperative_id, fiscal_year, total_distributable, total_contributions,
	total_distributed, rounding_difference, members_receiving, notes, executed_at, executed_by`

type PgxDistributionRepository struct {
	BaseRepository
}

// newPgxDistributionRepository creates a new repository for surplus distributions.
func newPgxDistributionRepository(pool *pgxpool.Pool) portsrepo.DistributionRepositoryFacade {
	return &PgxDistributionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDistributionRepository implements portsrepo.DistributionRepositoryFacade
var _ portsrepo.DistributionRepositoryFacade = (*PgxDistributionRepository)(nil)

func scanDistribution(row pgx.Row) (models.SurplusDistribution, error) {
	var m models.SurplusDistribution
	err := row.Scan(
		&m.DistributionID,
		&m.CooperativeID,
		&m.FiscalYear,
		&m.TotalDistributable,
		&m.TotalContributions,
		&m.TotalDistributed,
		&m.RoundingDifference,
		&m.MembersReceiving,
		&m.Notes,
		&m.ExecutedAt,
		&m.ExecutedBy,
	)
	return m, err
}

// LockDistributionYear takes a transaction-scoped advisory lock on (cooperative, fiscal year).
func (r *PgxDistributionRepository) LockDistributionYear(ctx context.Context, cooperativeID string, fiscalYear int) error {
	tx, err := r.txConn(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1), $2::int);`, cooperativeID, fiscalYear); err != nil {
		return wrapDBError(err, "failed to lock distribution %s/%d", cooperativeID, fiscalYear)
	}
	return nil
}

// SaveDistribution inserts the distribution summary.
func (r *PgxDistributionRepository) SaveDistribution(ctx context.Context, dist domain.DistributionSummary) error {
	m := mapping.ToModelSurplusDistribution(dist)
	query := `
		INSERT INTO surplus_distributions (` + distributionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.DistributionID,
		m.CooperativeID,
		m.FiscalYear,
		m.TotalDistributable,
		m.TotalContributions,
		m.TotalDistributed,
		m.RoundingDifference,
		m.MembersReceiving,
		m.Notes,
		m.ExecutedAt,
		m.ExecutedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: fiscal year %d", apperrors.ErrDuplicateDistribution, m.FiscalYear)
		}
		return wrapDBError(err, "failed to save distribution %s", m.DistributionID)
	}
	return nil
}

// FindDistributionByFiscalYear retrieves the distribution executed for (cooperative, fiscal year).
func (r *PgxDistributionRepository) FindDistributionByFiscalYear(ctx context.Context, cooperativeID string, fiscalYear int) (*domain.DistributionSummary, error) {
	query := `SELECT ` + distributionColumns + ` FROM surplus_distributions WHERE cooperative_id = $1 AND fiscal_year = $2;`
	m, err := scanDistribution(r.conn(ctx).QueryRow(ctx, query, cooperativeID, fiscalYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapDBError(err, "failed to find distribution %s/%d", cooperativeID, fiscalYear)
	}
	dist := mapping.ToDomainSurplusDistribution(m)
	return &dist, nil
}

// ListDistributions retrieves every distribution of a cooperative, latest fiscal year first.
func (r *PgxDistributionRepository) ListDistributions(ctx context.Context, cooperativeID string) ([]domain.DistributionSummary, error) {
	query := `SELECT ` + distributionColumns + ` FROM surplus_distributions WHERE cooperative_id = $1 ORDER BY fiscal_year DESC;`
	rows, err := r.conn(ctx).Query(ctx, query, cooperativeID)
	if err != nil {
		return nil, wrapDBError(err, "failed to list distributions")
	}
	defer rows.Close()

	dists := []domain.DistributionSummary{}
	for rows.Next() {
		m, err := scanDistribution(rows)
		if err != nil {
			return nil, wrapDBError(err, "failed to scan distribution row")
		}
		dists = append(dists, mapping.ToDomainSurplusDistribution(m))
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "error iterating distribution rows")
	}
	return dists, nil
}

// ListContributionCandidates returns every member of the cooperative with the
// fiscal year's completed deposits into its contributions account and its
// surplus account ID. Eligibility is decided by the caller.
func (r *PgxDistributionRepository) ListContributionCandidates(ctx context.Context, cooperativeID string, fiscalYear int) ([]domain.ContributionCandidate, error) {
	query := `
		SELECT ` + memberColumns + `,
		       COALESCE((
		           SELECT SUM(t.amount)
		           FROM transactions t
		           JOIN accounts c ON c.account_id = t.account_id
		           WHERE c.member_id = members.member_id
		             AND c.account_type = 'contributions'
		             AND t.transaction_type = 'deposit'
		             AND t.status = 'completed'
		             AND t.fiscal_year = $2
		       ), 0) AS contributions,
		       COALESCE((
		           SELECT s.account_id FROM accounts s
		           WHERE s.member_id = members.member_id AND s.account_type = 'surplus'
		       ), '') AS surplus_account_id
		FROM members
		WHERE cooperative_id = $1
		ORDER BY code_year, consecutive;
	`
	rows, err := r.conn(ctx).Query(ctx, query, cooperativeID, fiscalYear)
	if err != nil {
		return nil, wrapDBError(err, "failed to list contribution candidates for %d", fiscalYear)
	}
	defer rows.Close()

	candidates := []domain.ContributionCandidate{}
	for rows.Next() {
		var contributions decimal.Decimal
		var surplusAccountID string
		member, err := scanMember(rows, &contributions, &surplusAccountID)
		if err != nil {
			return nil, wrapDBError(err, "failed to scan contribution candidate row")
		}
		candidates = append(candidates, domain.ContributionCandidate{
			Member:           member,
			Contributions:    contributions,
			SurplusAccountID: surplusAccountID,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "error iterating contribution candidate rows")
	}
	return candidates, nil
}
