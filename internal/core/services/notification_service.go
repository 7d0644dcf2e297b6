package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// notificationService writes inbox entries. Delivery to devices happens elsewhere.
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
	memberRepo       portsrepo.MemberReader
	withdrawalRepo   portsrepo.WithdrawalRequestReader
}

// NewNotificationService creates a new inbox notifier.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, memberRepo portsrepo.MemberReader, withdrawalRepo portsrepo.WithdrawalRequestReader, options ...ServiceOption) portssvc.Notifier {
	return &notificationService{
		BaseService:      newBaseService(options...),
		notificationRepo: notificationRepo,
		memberRepo:       memberRepo,
		withdrawalRepo:   withdrawalRepo,
	}
}

var _ portssvc.Notifier = (*notificationService)(nil)

// NotifyStaffWithdrawalRequested tells staff a request awaits review. The entry
// is saved before the request status is read back, so a review that lands in
// between either sees the entry or is seen here.
func (s *notificationService) NotifyStaffWithdrawalRequested(ctx context.Context, req domain.WithdrawalRequest) error {
	msg := fmt.Sprintf("Member %s requested a withdrawal of %s from %s",
		s.memberLabel(ctx, req.MemberID), req.Amount.StringFixed(domain.CentPlaces), req.AccountType)
	if err := s.save(ctx, domain.Notification{
		Recipient:   domain.RecipientStaff,
		Kind:        domain.KindWithdrawalRequested,
		ReferenceID: req.RequestID,
		Message:     msg,
	}); err != nil {
		return err
	}

	current, err := s.withdrawalRepo.FindWithdrawalRequestByID(ctx, req.RequestID)
	if err != nil {
		return fmt.Errorf("failed to re-read withdrawal request %s: %w", req.RequestID, err)
	}
	if current.IsPending() {
		return nil
	}
	return s.MarkWithdrawalRequestNotificationsProcessed(ctx, req.RequestID)
}

// NotifyMemberWithdrawalResolved tells the member how staff resolved the request.
func (s *notificationService) NotifyMemberWithdrawalResolved(ctx context.Context, req domain.WithdrawalRequest) error {
	n := domain.Notification{
		Recipient:   domain.RecipientMember,
		MemberID:    &req.MemberID,
		ReferenceID: req.RequestID,
	}
	amount := req.Amount.StringFixed(domain.CentPlaces)
	switch req.Status {
	case domain.RequestApproved:
		n.Kind = domain.KindWithdrawalApproved
		n.Message = fmt.Sprintf("Your withdrawal of %s was approved", amount)
	case domain.RequestRejected:
		n.Kind = domain.KindWithdrawalRejected
		n.Message = fmt.Sprintf("Your withdrawal of %s was rejected", amount)
		if req.ReviewNotes != nil {
			n.Message += ": " + *req.ReviewNotes
		}
	default:
		return fmt.Errorf("withdrawal request %s is still %s", req.RequestID, req.Status)
	}
	return s.save(ctx, n)
}

// MarkWithdrawalRequestNotificationsProcessed closes the staff entries of a resolved request.
func (s *notificationService) MarkWithdrawalRequestNotificationsProcessed(ctx context.Context, requestID string) error {
	n, err := s.notificationRepo.MarkNotificationsProcessed(ctx, domain.RecipientStaff, domain.KindWithdrawalRequested, requestID, s.now())
	if err != nil {
		return err
	}
	s.LogDebug(ctx, "Marked staff notifications processed", slog.String("request_id", requestID), slog.Int64("count", n))
	return nil
}

// ListNotifications retrieves inbox entries, newest first.
func (s *notificationService) ListNotifications(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	if filter.Recipient == "" {
		filter.Recipient = domain.RecipientStaff
	}
	return s.notificationRepo.ListNotifications(ctx, filter)
}

func (s *notificationService) save(ctx context.Context, n domain.Notification) error {
	n.NotificationID = uuid.NewString()
	n.CreatedAt = s.now()
	if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
		return fmt.Errorf("failed to save %s notification for %s: %w", n.Kind, n.ReferenceID, err)
	}
	return nil
}

// memberLabel prefers the member code and falls back to the ID.
func (s *notificationService) memberLabel(ctx context.Context, memberID string) string {
	m, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return memberID
	}
	return fmt.Sprintf("%s (%s)", m.FullName, m.MemberCode)
}
