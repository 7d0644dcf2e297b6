package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/core/services"
	"github.com/SscSPs/coop_savings_app/internal/dto"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) NotifyStaffWithdrawalRequested(ctx context.Context, req domain.WithdrawalRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockNotifier) NotifyMemberWithdrawalResolved(ctx context.Context, req domain.WithdrawalRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockNotifier) MarkWithdrawalRequestNotificationsProcessed(ctx context.Context, requestID string) error {
	return m.Called(ctx, requestID).Error(0)
}

func (m *MockNotifier) ListNotifications(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

// --- Mock ReceiptGenerator ---
type MockReceiptGenerator struct {
	mock.Mock
}

var _ portssvc.ReceiptGenerator = (*MockReceiptGenerator)(nil)

func (m *MockReceiptGenerator) GenerateReceipt(ctx context.Context, transactionID string) (*domain.Receipt, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptGenerator) GetReceipt(ctx context.Context, transactionID string) (*domain.Receipt, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

type WithdrawalServiceTestSuite struct {
	suite.Suite
	h        *harness
	memberID string
}

func (s *WithdrawalServiceTestSuite) SetupTest() {
	s.h = newHarness(s.T())
	s.memberID = s.h.affiliate("Clara Rios", "6000006").Member.MemberID
	s.h.deposit(s.memberID, domain.Savings, "500")
}

func TestWithdrawalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WithdrawalServiceTestSuite))
}

func (s *WithdrawalServiceTestSuite) request(amount string) *domain.WithdrawalRequest {
	req, err := s.h.svc.Withdrawal.CreateWithdrawalRequest(s.h.ctx, s.memberID, dto.CreateWithdrawalRequestRequest{
		AccountType: "savings",
		Amount:      dec(amount),
		Note:        "school trip",
	}, s.memberID)
	s.Require().NoError(err)
	// Let the staff notification land before the request is resolved.
	s.h.dispatcher.Wait()
	return req
}

func (s *WithdrawalServiceTestSuite) staffInbox() []domain.Notification {
	s.h.dispatcher.Wait()
	n, err := s.h.svc.Notifier.ListNotifications(s.h.ctx, domain.NotificationFilter{Recipient: domain.RecipientStaff})
	s.Require().NoError(err)
	return n
}

func (s *WithdrawalServiceTestSuite) TestCreate_PendingAndStaffNotified() {
	req := s.request("200")
	s.Equal(domain.RequestPending, req.Status)
	s.Equal("school trip", req.MemberNote)
	s.Nil(req.TransactionID)

	inbox := s.staffInbox()
	s.Require().Len(inbox, 1)
	s.Equal(domain.KindWithdrawalRequested, inbox[0].Kind)
	s.Equal(req.RequestID, inbox[0].ReferenceID)
	s.Contains(inbox[0].Message, "Clara Rios")
	s.False(inbox[0].Processed)

	// Creating a request moves no money.
	s.True(s.h.account(s.memberID, domain.Savings).CurrentBalance.Equal(dec("500")))
}

func (s *WithdrawalServiceTestSuite) TestCreate_Validation() {
	tests := []struct {
		name string
		req  dto.CreateWithdrawalRequestRequest
		want error
	}{
		{"missing account type", dto.CreateWithdrawalRequestRequest{Amount: dec("10")}, apperrors.ErrValidation},
		{"non-savings account", dto.CreateWithdrawalRequestRequest{AccountType: "contributions", Amount: dec("10")}, apperrors.ErrValidation},
		{"zero amount", dto.CreateWithdrawalRequestRequest{AccountType: "savings", Amount: dec("0")}, apperrors.ErrValidation},
		{"sub-cent amount", dto.CreateWithdrawalRequestRequest{AccountType: "savings", Amount: dec("0.005")}, apperrors.ErrValidation},
		{"more than the balance", dto.CreateWithdrawalRequestRequest{AccountType: "savings", Amount: dec("500.01")}, apperrors.ErrInsufficientFunds},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.h.svc.Withdrawal.CreateWithdrawalRequest(s.h.ctx, s.memberID, tt.req, s.memberID)
			s.ErrorIs(err, tt.want)
		})
	}
	_, err := s.h.svc.Withdrawal.CreateWithdrawalRequest(s.h.ctx, "missing", dto.CreateWithdrawalRequestRequest{AccountType: "savings", Amount: dec("1")}, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *WithdrawalServiceTestSuite) TestApprove_PostsAndResolves() {
	req := s.request("200")
	s.h.clock.Set(s.h.clock.Now().Add(time.Hour))

	approved, err := s.h.svc.Withdrawal.ApproveWithdrawalRequest(s.h.ctx, req.RequestID, staffActor, "ok")
	s.Require().NoError(err)
	s.Equal(domain.RequestApproved, approved.Status)
	s.Require().NotNil(approved.TransactionID)
	s.Equal(staffActor, *approved.ReviewedBy)
	s.Require().NotNil(approved.ReviewedAt)
	s.True(approved.ReviewedAt.Equal(s.h.clock.Now()))

	txn, err := s.h.svc.Ledger.GetTransaction(s.h.ctx, *approved.TransactionID)
	s.Require().NoError(err)
	s.True(txn.Amount.Equal(dec("-200")))
	s.True(s.h.account(s.memberID, domain.Savings).CurrentBalance.Equal(dec("300")))

	inbox := s.staffInbox()
	s.Require().Len(inbox, 1)
	s.True(inbox[0].Processed)

	memberInbox, err := s.h.svc.Notifier.ListNotifications(s.h.ctx, domain.NotificationFilter{Recipient: domain.RecipientMember, MemberID: &s.memberID})
	s.Require().NoError(err)
	s.Require().Len(memberInbox, 1)
	s.Equal(domain.KindWithdrawalApproved, memberInbox[0].Kind)

	_, err = s.h.svc.Withdrawal.ApproveWithdrawalRequest(s.h.ctx, req.RequestID, staffActor, "")
	s.ErrorIs(err, apperrors.ErrInvalidStatus)
	_, err = s.h.svc.Withdrawal.RejectWithdrawalRequest(s.h.ctx, req.RequestID, staffActor, "too late")
	s.ErrorIs(err, apperrors.ErrInvalidStatus)
	s.h.requireLedgerConsistent()
}

func (s *WithdrawalServiceTestSuite) TestApprove_InsufficientFundsLeavesRequestPending() {
	req := s.request("400")
	_, err := s.h.svc.Ledger.PostWithdrawal(s.h.ctx, s.memberID, dto.PostWithdrawalRequest{Amount: dec("300")}, staffActor)
	s.Require().NoError(err)

	_, err = s.h.svc.Withdrawal.ApproveWithdrawalRequest(s.h.ctx, req.RequestID, staffActor, "")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	stored, err := s.h.svc.Withdrawal.GetWithdrawalRequest(s.h.ctx, req.RequestID)
	s.Require().NoError(err)
	s.Equal(domain.RequestPending, stored.Status)
	s.True(s.h.account(s.memberID, domain.Savings).CurrentBalance.Equal(dec("200")))
}

func (s *WithdrawalServiceTestSuite) TestApprove_FailedResolutionRollsBackPosting() {
	req := s.request("100")
	s.h.store.injectFailure("UpdateWithdrawalRequestResolution", 0, apperrors.Internal("lost connection", nil))

	_, err := s.h.svc.Withdrawal.ApproveWithdrawalRequest(s.h.ctx, req.RequestID, staffActor, "")
	s.ErrorIs(err, apperrors.ErrInternal)
	s.h.store.clearFailures()

	s.True(s.h.account(s.memberID, domain.Savings).CurrentBalance.Equal(dec("500")))
	stored, err := s.h.svc.Withdrawal.GetWithdrawalRequest(s.h.ctx, req.RequestID)
	s.Require().NoError(err)
	s.Equal(domain.RequestPending, stored.Status)
	s.h.requireLedgerConsistent()
	s.Zero(testutil.ToFloat64(s.h.metrics.PostingsTotal.WithLabelValues(string(domain.Withdrawal))))

	_, err = s.h.svc.Withdrawal.ApproveWithdrawalRequest(s.h.ctx, req.RequestID, staffActor, "")
	s.Require().NoError(err)
	s.Equal(1.0, testutil.ToFloat64(s.h.metrics.PostingsTotal.WithLabelValues(string(domain.Withdrawal))))
}

func (s *WithdrawalServiceTestSuite) TestStaffNotificationLandingAfterReview() {
	req := s.request("50")
	_, err := s.h.svc.Withdrawal.ApproveWithdrawalRequest(s.h.ctx, req.RequestID, staffActor, "")
	s.Require().NoError(err)
	s.h.dispatcher.Wait()

	// A staff notification delayed past the review must not stay open.
	s.Require().NoError(s.h.svc.Notifier.NotifyStaffWithdrawalRequested(s.h.ctx, *req))

	inbox := s.staffInbox()
	s.Len(inbox, 2)
	for _, n := range inbox {
		s.Equal(req.RequestID, n.ReferenceID)
		s.True(n.Processed)
	}
	pending, err := s.h.svc.Notifier.ListNotifications(s.h.ctx, domain.NotificationFilter{Recipient: domain.RecipientStaff, OnlyPending: true})
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *WithdrawalServiceTestSuite) TestReject() {
	req := s.request("100")

	_, err := s.h.svc.Withdrawal.RejectWithdrawalRequest(s.h.ctx, req.RequestID, staffActor, "   ")
	s.ErrorIs(err, apperrors.ErrValidation)

	rejected, err := s.h.svc.Withdrawal.RejectWithdrawalRequest(s.h.ctx, req.RequestID, staffActor, "exceeds monthly limit")
	s.Require().NoError(err)
	s.Equal(domain.RequestRejected, rejected.Status)
	s.Nil(rejected.TransactionID)
	s.Equal("exceeds monthly limit", *rejected.ReviewNotes)
	s.True(s.h.account(s.memberID, domain.Savings).CurrentBalance.Equal(dec("500")))

	s.h.dispatcher.Wait()
	memberInbox, err := s.h.svc.Notifier.ListNotifications(s.h.ctx, domain.NotificationFilter{Recipient: domain.RecipientMember, MemberID: &s.memberID})
	s.Require().NoError(err)
	s.Require().Len(memberInbox, 1)
	s.Equal(domain.KindWithdrawalRejected, memberInbox[0].Kind)
	s.Contains(memberInbox[0].Message, "exceeds monthly limit")

	_, err = s.h.svc.Withdrawal.ApproveWithdrawalRequest(s.h.ctx, req.RequestID, staffActor, "")
	s.ErrorIs(err, apperrors.ErrInvalidStatus)
}

func (s *WithdrawalServiceTestSuite) TestList_Filters() {
	first := s.request("10")
	s.h.clock.Set(s.h.clock.Now().Add(time.Minute))
	s.request("20")
	_, err := s.h.svc.Withdrawal.RejectWithdrawalRequest(s.h.ctx, first.RequestID, staffActor, "no")
	s.Require().NoError(err)

	pending := "pending"
	list, err := s.h.svc.Withdrawal.ListWithdrawalRequests(s.h.ctx, dto.ListWithdrawalRequestsParams{Status: &pending})
	s.Require().NoError(err)
	s.Len(list, 1)

	all, err := s.h.svc.Withdrawal.ListWithdrawalRequests(s.h.ctx, dto.ListWithdrawalRequestsParams{MemberID: &s.memberID})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.True(all[0].CreatedAt.After(all[1].CreatedAt))

	bogus := "cancelled"
	_, err = s.h.svc.Withdrawal.ListWithdrawalRequests(s.h.ctx, dto.ListWithdrawalRequestsParams{Status: &bogus})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestWithdrawal_ConcurrentApprovalsPostOnce(t *testing.T) {
	h := newHarness(t)
	memberID := h.affiliate("Elena Paz", "7000007").Member.MemberID
	h.deposit(memberID, domain.Savings, "100")
	req, err := h.svc.Withdrawal.CreateWithdrawalRequest(h.ctx, memberID, dto.CreateWithdrawalRequestRequest{AccountType: "savings", Amount: dec("60")}, memberID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	approved, conflicts := 0, 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.svc.Withdrawal.ApproveWithdrawalRequest(h.ctx, req.RequestID, staffActor, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				approved++
			case errors.Is(err, apperrors.ErrInvalidStatus):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, approved)
	assert.Equal(t, 7, conflicts)
	assert.True(t, h.account(memberID, domain.Savings).CurrentBalance.Equal(dec("40")))
	h.requireLedgerConsistent()
}

func TestWithdrawal_SideEffectFailuresAreSwallowed(t *testing.T) {
	store := newMemStore()
	dispatcher := services.NewSideEffectDispatcher(2, time.Second, nil)
	notifier := new(MockNotifier)
	receipts := new(MockReceiptGenerator)
	notifier.On("NotifyStaffWithdrawalRequested", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	notifier.On("NotifyMemberWithdrawalResolved", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	notifier.On("MarkWithdrawalRequestNotificationsProcessed", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	receipts.On("GenerateReceipt", mock.Anything, mock.Anything).Return(nil, errors.New("printer jammed"))

	opts := []services.ServiceOption{services.WithSideEffects(dispatcher), services.WithNotifier(notifier), services.WithReceipts(receipts)}
	ledger := services.NewLedgerService(store, store, store, store, opts...)
	members := services.NewMemberService(store, store, store, ledger, opts...)
	withdrawals := services.NewWithdrawalService(store, store, store, store, ledger, opts...)
	ctx := context.Background()

	a, err := members.Affiliate(ctx, testCoopID, dto.AffiliateMemberRequest{FullName: "Ines Soto", NationalID: "8000008"}, staffActor)
	require.NoError(t, err)
	_, err = ledger.PostDeposit(ctx, a.Member.MemberID, dto.PostDepositRequest{Amount: dec("50")}, staffActor)
	require.NoError(t, err)

	req, err := withdrawals.CreateWithdrawalRequest(ctx, a.Member.MemberID, dto.CreateWithdrawalRequestRequest{AccountType: "savings", Amount: dec("20")}, a.Member.MemberID)
	require.NoError(t, err)
	approved, err := withdrawals.ApproveWithdrawalRequest(ctx, req.RequestID, staffActor, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, approved.Status)

	dispatcher.Wait()
	notifier.AssertExpectations(t)
	receipts.AssertNumberOfCalls(t, "GenerateReceipt", 2)
}

func TestWithdrawal_SavingsScenario(t *testing.T) {
	h := newHarness(t)
	memberID := h.affiliate("Marta Solis", "7000007").Member.MemberID
	h.deposit(memberID, domain.Savings, "10000")

	dep := h.deposit(memberID, domain.Savings, "5000")
	assert.Equal(t, domain.Deposit, dep.TransactionType)
	assert.True(t, dep.BalanceAfter.Equal(dec("15000")))

	_, err := h.svc.Withdrawal.CreateWithdrawalRequest(h.ctx, memberID, dto.CreateWithdrawalRequestRequest{
		AccountType: "savings",
		Amount:      dec("20000"),
	}, memberID)
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	stored, err := h.svc.Withdrawal.ListWithdrawalRequests(h.ctx, dto.ListWithdrawalRequestsParams{MemberID: &memberID, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, stored)

	req, err := h.svc.Withdrawal.CreateWithdrawalRequest(h.ctx, memberID, dto.CreateWithdrawalRequestRequest{
		AccountType: "savings",
		Amount:      dec("3000"),
	}, memberID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Status)
	h.dispatcher.Wait()

	approved, err := h.svc.Withdrawal.ApproveWithdrawalRequest(h.ctx, req.RequestID, staffActor, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, approved.Status)
	require.NotNil(t, approved.TransactionID)

	txn, err := h.svc.Ledger.GetTransaction(h.ctx, *approved.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, domain.Withdrawal, txn.TransactionType)
	assert.True(t, txn.Amount.Equal(dec("-3000")))
	assert.True(t, h.account(memberID, domain.Savings).CurrentBalance.Equal(dec("12000")))
	h.requireLedgerConsistent()
}
