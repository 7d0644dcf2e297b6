package pgsql

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	"github.com/SscSPs/coop_savings_app/internal/models"
	"github.com/SscSPs/coop_savings_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for inbox notifications.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

// SaveNotification inserts an inbox entry.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	m := mapping.ToModelNotification(n)
	query := `
		INSERT INTO notifications (notification_id, recipient, member_id, kind, reference_id, message, processed, created_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.NotificationID,
		m.Recipient,
		m.MemberID,
		m.Kind,
		m.ReferenceID,
		m.Message,
		m.Processed,
		m.CreatedAt,
		m.ProcessedAt,
	)
	if err != nil {
		return wrapDBError(err, "failed to save notification %s", m.NotificationID)
	}
	return nil
}

// ListNotifications retrieves inbox entries, newest first.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	args := []any{string(filter.Recipient)}
	conditions := []string{"recipient = $1"}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.MemberID != nil {
		conditions = append(conditions, "member_id = "+next(*filter.MemberID))
	}
	if filter.OnlyPending {
		conditions = append(conditions, "NOT processed")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT notification_id, recipient, member_id, kind, reference_id, message, processed, created_at, processed_at
		FROM notifications
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY created_at DESC, notification_id DESC
		LIMIT ` + next(limit) + ` OFFSET ` + next(filter.Offset) + `;`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to list notifications")
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var m models.Notification
		if err := rows.Scan(
			&m.NotificationID,
			&m.Recipient,
			&m.MemberID,
			&m.Kind,
			&m.ReferenceID,
			&m.Message,
			&m.Processed,
			&m.CreatedAt,
			&m.ProcessedAt,
		); err != nil {
			return nil, wrapDBError(err, "failed to scan notification row")
		}
		notifications = append(notifications, mapping.ToDomainNotification(m))
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err, "error iterating notification rows")
	}
	return notifications, nil
}

// MarkNotificationsProcessed flags every pending entry of a kind for a reference as processed.
func (r *PgxNotificationRepository) MarkNotificationsProcessed(ctx context.Context, recipient domain.NotificationRecipient, kind domain.NotificationKind, referenceID string, now time.Time) (int64, error) {
	query := `
		UPDATE notifications
		SET processed = TRUE, processed_at = $4
		WHERE recipient = $1 AND kind = $2 AND reference_id = $3 AND NOT processed;
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, string(recipient), string(kind), referenceID, now)
	if err != nil {
		return 0, wrapDBError(err, "failed to mark %s notifications for %s processed", kind, referenceID)
	}
	return cmdTag.RowsAffected(), nil
}
