package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/middleware"
	"github.com/SscSPs/coop_savings_app/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	metrics     *metrics.Metrics
	sideEffects *SideEffectDispatcher
	notifier    portssvc.Notifier
	receipts    portssvc.ReceiptGenerator
	clock       func() time.Time
}

// ServiceOption is a functional option for configuring a service
type ServiceOption func(*BaseService)

// WithMetrics adds the prometheus collectors.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.metrics = m
	}
}

// WithSideEffects sets the dispatcher that runs post-commit collaborator calls.
func WithSideEffects(d *SideEffectDispatcher) ServiceOption {
	return func(s *BaseService) {
		s.sideEffects = d
	}
}

// WithNotifier adds the inbox notifier.
func WithNotifier(n portssvc.Notifier) ServiceOption {
	return func(s *BaseService) {
		s.notifier = n
	}
}

// WithReceipts adds the receipt generator.
func WithReceipts(r portssvc.ReceiptGenerator) ServiceOption {
	return func(s *BaseService) {
		s.receipts = r
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	b := BaseService{clock: time.Now}
	for _, option := range options {
		option(&b)
	}
	if b.sideEffects == nil {
		b.sideEffects = NewSideEffectDispatcher(DefaultSideEffectConcurrency, DefaultSideEffectTimeout, b.metrics)
	}
	return b
}

// now returns the current time in UTC.
func (s *BaseService) now() time.Time {
	return s.clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.ErrorContext(ctx, msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).WarnContext(ctx, msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).InfoContext(ctx, msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).DebugContext(ctx, msg, keyvals...)
}

// logFailure logs err at a level matching its kind. Caller mistakes are not errors of the service.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrInternal) {
		s.LogError(ctx, err, msg, keyvals...)
		return
	}
	s.LogDebug(ctx, msg, append([]any{slog.String("error", err.Error())}, keyvals...)...)
}

// issueReceipts schedules a receipt for every transaction once the unit of work has committed.
func (s *BaseService) issueReceipts(ctx context.Context, txns ...domain.Transaction) {
	if s.receipts == nil {
		return
	}
	for _, txn := range txns {
		transactionID := txn.TransactionID
		s.sideEffects.Dispatch(ctx, "receipt", func(ctx context.Context) error {
			_, err := s.receipts.GenerateReceipt(ctx, transactionID)
			return err
		}, slog.String("transaction_id", transactionID))
	}
}

// failureReason labels a posting failure for metrics.
func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrInvalidStatus):
		return "invalid_status"
	default:
		return "internal"
	}
}
