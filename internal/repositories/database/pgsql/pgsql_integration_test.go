package pgsql

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	"github.com/SscSPs/coop_savings_app/internal/platform/metrics"
	"github.com/SscSPs/coop_savings_app/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// PgsqlSuite runs against a real database named by PGSQL_TEST_URL.
type PgsqlSuite struct {
	suite.Suite
	pool   *pgxpool.Pool
	repos  portsrepo.RepositoryProvider
	coopID string
	now    time.Time
}

func TestPgsqlSuite(t *testing.T) {
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}
	suite.Run(t, &PgsqlSuite{})
}

func (s *PgsqlSuite) SetupSuite() {
	url := os.Getenv("PGSQL_TEST_URL")
	logger := slog.Default()
	s.Require().NoError(database.MigrateUp(url, logger))

	pool, err := database.NewPgxPool(context.Background(), url, 10, logger)
	s.Require().NoError(err)
	s.pool = pool
	s.repos = NewRepositoryProvider(pool, metrics.New(), 3)
}

func (s *PgsqlSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool, slog.Default())
}

func (s *PgsqlSuite) SetupTest() {
	// Each test gets its own cooperative so runs never collide.
	s.coopID = "coop-" + uuid.NewString()[:8]
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PgsqlSuite) audit() domain.AuditFields {
	return domain.AuditFields{CreatedAt: s.now, CreatedBy: "test", LastUpdatedAt: s.now, LastUpdatedBy: "test"}
}

func (s *PgsqlSuite) newMember(ctx context.Context) (domain.Member, map[domain.AccountType]domain.Account) {
	var member domain.Member
	accounts := map[domain.AccountType]domain.Account{}
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := s.repos.MemberRepo.NextMemberConsecutive(ctx, s.coopID, 2024)
		if err != nil {
			return err
		}
		member = domain.Member{
			MemberID:        uuid.NewString(),
			CooperativeID:   s.coopID,
			FullName:        "Ana Test",
			NationalID:      uuid.NewString(),
			MemberCode:      domain.FormatMemberCode(n, 2024),
			Consecutive:     n,
			CodeYear:        2024,
			IsActive:        true,
			AffiliationDate: s.now,
			AuditFields:     s.audit(),
		}
		if err := s.repos.MemberRepo.SaveMember(ctx, member); err != nil {
			return err
		}
		list := make([]domain.Account, 0, len(domain.MemberAccountTypes))
		for _, t := range domain.MemberAccountTypes {
			acc := domain.Account{AccountID: uuid.NewString(), MemberID: member.MemberID, AccountType: t, CurrentBalance: decimal.Zero, AuditFields: s.audit()}
			accounts[t] = acc
			list = append(list, acc)
		}
		return s.repos.AccountRepo.SaveAccounts(ctx, list)
	})
	s.Require().NoError(err)
	return member, accounts
}

func (s *PgsqlSuite) post(ctx context.Context, acc domain.Account, amount string) domain.Transaction {
	var txn domain.Transaction
	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.repos.AccountRepo.FindAccountForUpdate(ctx, acc.AccountID)
		if err != nil {
			return err
		}
		delta := decimal.RequireFromString(amount)
		txn = domain.Transaction{
			TransactionID:   uuid.NewString(),
			AccountID:       acc.AccountID,
			TransactionType: domain.Deposit,
			Amount:          delta,
			FiscalYear:      2024,
			Status:          domain.TransactionCompleted,
			BalanceAfter:    locked.CurrentBalance.Add(delta),
			CreatedAt:       s.now,
			CreatedBy:       "test",
		}
		if err := s.repos.TransactionRepo.SaveTransaction(ctx, txn); err != nil {
			return err
		}
		_, err = s.repos.AccountRepo.UpdateAccountBalance(ctx, acc.AccountID, delta, "test", s.now)
		return err
	})
	s.Require().NoError(err)
	return txn
}

func (s *PgsqlSuite) TestMemberCodesAreSequentialUnderConcurrency() {
	ctx := context.Background()
	const n = 20
	codes := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, _ := s.newMember(ctx)
			codes <- m.MemberCode
		}()
	}
	wg.Wait()
	close(codes)

	seen := map[string]bool{}
	for c := range codes {
		s.False(seen[c], "duplicate code %s", c)
		seen[c] = true
	}
	s.Len(seen, n)
}

func (s *PgsqlSuite) TestDuplicateNationalID() {
	ctx := context.Background()
	m, _ := s.newMember(ctx)
	dup := m
	dup.MemberID = uuid.NewString()
	dup.MemberCode = "999-2024"
	dup.Consecutive = 999
	err := s.repos.MemberRepo.SaveMember(ctx, dup)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *PgsqlSuite) TestLockingReadsRequireTransaction() {
	_, err := s.repos.AccountRepo.FindAccountForUpdate(context.Background(), "missing")
	s.ErrorIs(err, apperrors.ErrInternal)
}

func (s *PgsqlSuite) TestRollbackLeavesNoTrace() {
	ctx := context.Background()
	_, accounts := s.newMember(ctx)
	savings := accounts[domain.Savings]
	boom := errors.New("boom")

	err := s.repos.TxManager.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.repos.AccountRepo.UpdateAccountBalance(ctx, savings.AccountID, decimal.NewFromInt(50), "test", s.now)
		s.Require().NoError(err)
		return boom
	})
	s.ErrorIs(err, boom)

	acc, err := s.repos.AccountRepo.FindAccountByID(ctx, savings.AccountID)
	s.Require().NoError(err)
	s.True(acc.CurrentBalance.IsZero())
}

func (s *PgsqlSuite) TestTransactionsAreImmutable() {
	ctx := context.Background()
	_, accounts := s.newMember(ctx)
	txn := s.post(ctx, accounts[domain.Savings], "100.00")

	_, err := s.pool.Exec(ctx, `UPDATE transactions SET amount = 1 WHERE transaction_id = $1`, txn.TransactionID)
	s.Error(err)
	_, err = s.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, txn.TransactionID)
	s.Error(err)
}

func (s *PgsqlSuite) TestListTransactionsPaginates() {
	ctx := context.Background()
	_, accounts := s.newMember(ctx)
	savings := accounts[domain.Savings]
	for i := 0; i < 5; i++ {
		s.now = s.now.Add(time.Second)
		s.post(ctx, savings, "10.00")
	}

	var all []domain.Transaction
	var token *string
	for {
		page, next, err := s.repos.TransactionRepo.ListTransactionsByAccount(ctx, savings.AccountID, domain.TransactionFilter{}, 2, token)
		s.Require().NoError(err)
		all = append(all, page...)
		if next == nil {
			break
		}
		token = next
	}
	s.Require().Len(all, 5)
	for i := 1; i < len(all); i++ {
		s.True(all[i-1].CreatedAt.After(all[i].CreatedAt))
	}
	s.Equal("50", all[0].BalanceAfter.String())

	bad := "not-a-token"
	_, _, err := s.repos.TransactionRepo.ListTransactionsByAccount(ctx, savings.AccountID, domain.TransactionFilter{}, 2, &bad)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PgsqlSuite) TestReconciliationFindsDrift() {
	ctx := context.Background()
	_, accounts := s.newMember(ctx)
	savings := accounts[domain.Savings]
	s.post(ctx, savings, "100.00")

	_, err := s.pool.Exec(ctx, `UPDATE accounts SET current_balance = 90 WHERE account_id = $1`, savings.AccountID)
	s.Require().NoError(err)

	mismatches, err := s.repos.AccountRepo.FindBalanceMismatches(ctx)
	s.Require().NoError(err)
	var found *domain.BalanceMismatch
	for i := range mismatches {
		if mismatches[i].AccountID == savings.AccountID {
			found = &mismatches[i]
		}
	}
	s.Require().NotNil(found)
	s.Equal("-10", found.Difference().String())
}

func (s *PgsqlSuite) TestDistributionIsUniquePerYear() {
	ctx := context.Background()
	dist := domain.DistributionSummary{
		DistributionID:     uuid.NewString(),
		CooperativeID:      s.coopID,
		FiscalYear:         2024,
		TotalDistributable: decimal.NewFromInt(100),
		ExecutedAt:         s.now,
		ExecutedBy:         "test",
	}
	s.Require().NoError(s.repos.DistributionRepo.SaveDistribution(ctx, dist))

	dist.DistributionID = uuid.NewString()
	err := s.repos.DistributionRepo.SaveDistribution(ctx, dist)
	s.ErrorIs(err, apperrors.ErrDuplicateDistribution)

	found, err := s.repos.DistributionRepo.FindDistributionByFiscalYear(ctx, s.coopID, 2024)
	s.Require().NoError(err)
	s.NotEqual(dist.DistributionID, found.DistributionID)
}

func (s *PgsqlSuite) TestReceiptsAreIssuedOnce() {
	ctx := context.Background()
	m, accounts := s.newMember(ctx)
	txn := s.post(ctx, accounts[domain.Savings], "25.00")

	receipt := domain.Receipt{
		TransactionID:   txn.TransactionID,
		MemberCode:      m.MemberCode,
		MemberName:      m.FullName,
		AccountType:     domain.Savings,
		TransactionType: domain.Deposit,
		Amount:          txn.Amount,
		BalanceAfter:    txn.BalanceAfter,
		IssuedAt:        s.now,
		Body:            "body",
	}
	first, err := s.repos.ReceiptRepo.SaveReceipt(ctx, receipt)
	s.Require().NoError(err)
	second, err := s.repos.ReceiptRepo.SaveReceipt(ctx, receipt)
	s.Require().NoError(err)
	assert.Equal(s.T(), first.ReceiptNumber, second.ReceiptNumber)
}

func TestIsRetryable(t *testing.T) {
	require.False(t, isRetryable(errors.New("plain")))
	require.False(t, isRetryable(apperrors.ErrNotFound))
	require.True(t, isRetryable(&pgconn.PgError{Code: pgSerializationFailure}))
	require.True(t, isRetryable(wrapDBError(&pgconn.PgError{Code: pgDeadlockDetected}, "lock account %s", "a-1")))
	require.False(t, isRetryable(&pgconn.PgError{Code: pgUniqueViolation}))
	require.True(t, isUniqueViolation(wrapDBError(&pgconn.PgError{Code: pgUniqueViolation}, "insert")))
}
