package pgsql

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/core/services"
	"github.com/SscSPs/coop_savings_app/internal/dto"
	"github.com/shopspring/decimal"
)

// servicesOnDB wires the real services to the suite's repositories.
func (s *PgsqlSuite) servicesOnDB() (*portssvc.ServiceContainer, *services.SideEffectDispatcher) {
	dispatcher := services.NewSideEffectDispatcher(2, 5*time.Second, nil)
	s.T().Cleanup(dispatcher.Wait)
	return services.NewServiceContainer(s.repos, services.WithSideEffects(dispatcher)), dispatcher
}

// countTransactions counts the account's transactions of type t.
func (s *PgsqlSuite) countTransactions(ctx context.Context, accountID string, t domain.TransactionType) int {
	txns, _, err := s.repos.TransactionRepo.ListTransactionsByAccount(ctx, accountID, domain.TransactionFilter{}, 200, nil)
	s.Require().NoError(err)
	n := 0
	for _, txn := range txns {
		if txn.TransactionType == t {
			n++
		}
	}
	return n
}

func (s *PgsqlSuite) TestConcurrentDebitsNeverOverdraw() {
	ctx := context.Background()
	svc, dispatcher := s.servicesOnDB()
	member, accounts := s.newMember(ctx)
	savings := accounts[domain.Savings]

	_, err := svc.Ledger.PostDeposit(ctx, member.MemberID, dto.PostDepositRequest{Amount: decimal.NewFromInt(100), FiscalYear: 2024}, "test")
	s.Require().NoError(err)

	// Each debit is larger than balance/workers, so only some of them fit.
	const workers = 8
	debit := decimal.NewFromInt(30)
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		refused   int
		other     []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Ledger.PostTransaction(ctx, domain.Posting{
				AccountID:       savings.AccountID,
				TransactionType: domain.Withdrawal,
				Amount:          debit.Neg(),
				FiscalYear:      2024,
				Actor:           "test",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperrors.ErrInsufficientFunds):
				refused++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()
	dispatcher.Wait()

	s.Empty(other)
	s.Equal(3, succeeded)
	s.Equal(workers-3, refused)

	acc, err := s.repos.AccountRepo.FindAccountByID(ctx, savings.AccountID)
	s.Require().NoError(err)
	s.False(acc.CurrentBalance.IsNegative())
	s.True(acc.CurrentBalance.Equal(decimal.NewFromInt(10)), "balance %s", acc.CurrentBalance)
	s.Equal(3, s.countTransactions(ctx, savings.AccountID, domain.Withdrawal))
}

func (s *PgsqlSuite) TestConcurrentApprovalsPostOnce() {
	ctx := context.Background()
	svc, dispatcher := s.servicesOnDB()
	member, accounts := s.newMember(ctx)
	savings := accounts[domain.Savings]

	_, err := svc.Ledger.PostDeposit(ctx, member.MemberID, dto.PostDepositRequest{Amount: decimal.NewFromInt(100), FiscalYear: 2024}, "test")
	s.Require().NoError(err)
	req, err := svc.Withdrawal.CreateWithdrawalRequest(ctx, member.MemberID, dto.CreateWithdrawalRequestRequest{
		AccountType: "savings",
		Amount:      decimal.NewFromInt(40),
	}, member.MemberID)
	s.Require().NoError(err)

	const reviewers = 6
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		approved int
		stale    int
		other    []error
	)
	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Withdrawal.ApproveWithdrawalRequest(ctx, req.RequestID, "staff", "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				approved++
			case errors.Is(err, apperrors.ErrInvalidStatus):
				stale++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()
	dispatcher.Wait()

	s.Empty(other)
	s.Equal(1, approved)
	s.Equal(reviewers-1, stale)

	stored, err := s.repos.WithdrawalRepo.FindWithdrawalRequestByID(ctx, req.RequestID)
	s.Require().NoError(err)
	s.Equal(domain.RequestApproved, stored.Status)
	s.Require().NotNil(stored.TransactionID)

	acc, err := s.repos.AccountRepo.FindAccountByID(ctx, savings.AccountID)
	s.Require().NoError(err)
	s.True(acc.CurrentBalance.Equal(decimal.NewFromInt(60)), "balance %s", acc.CurrentBalance)
	s.Equal(1, s.countTransactions(ctx, savings.AccountID, domain.Withdrawal))
}
