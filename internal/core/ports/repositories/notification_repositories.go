package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
)

// NotificationRepositoryFacade stores the in-app notification inbox
type NotificationRepositoryFacade interface {
	// SaveNotification persists a new inbox entry.
	SaveNotification(ctx context.Context, n domain.Notification) error

	// ListNotifications retrieves inbox entries, newest first.
	ListNotifications(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error)

	// MarkNotificationsProcessed flags every pending entry of a kind for a reference as processed.
	MarkNotificationsProcessed(ctx context.Context, recipient domain.NotificationRecipient, kind domain.NotificationKind, referenceID string, now time.Time) (int64, error)
}
