package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService is the only writer of balances and transaction history.
type ledgerService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	memberRepo      portsrepo.MemberReader
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	memberRepo portsrepo.MemberReader,
	options ...ServiceOption,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService:     newBaseService(options...),
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		memberRepo:      memberRepo,
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostTransaction appends one completed transaction and moves the balance by its amount.
func (s *ledgerService) PostTransaction(ctx context.Context, posting domain.Posting) (*domain.Transaction, error) {
	if err := posting.Validate(); err != nil {
		s.metrics.ObservePostingFailure(failureReason(err))
		return nil, err
	}

	var posted domain.Transaction
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		acc, err := s.accountRepo.FindAccountForUpdate(ctx, posting.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, posting.AccountID)
			}
			return err
		}

		expected := acc.CurrentBalance.Add(posting.Amount)
		if posting.IsDebit() && !posting.AllowOverdraft && expected.IsNegative() {
			return fmt.Errorf("%w: account %s holds %s, cannot debit %s",
				apperrors.ErrInsufficientFunds, acc.AccountID, acc.CurrentBalance.StringFixed(domain.CentPlaces), posting.Amount.Neg().StringFixed(domain.CentPlaces))
		}

		now := s.now()
		txn := domain.Transaction{
			TransactionID:   uuid.NewString(),
			AccountID:       acc.AccountID,
			MemberID:        acc.MemberID,
			AccountType:     acc.AccountType,
			TransactionType: posting.TransactionType,
			Amount:          posting.Amount,
			FiscalYear:      posting.FiscalYear,
			Status:          domain.TransactionCompleted,
			Description:     posting.Description,
			ReceiptRef:      posting.ReceiptRef,
			DistributionID:  posting.DistributionID,
			BalanceAfter:    expected,
			CreatedAt:       now,
			CreatedBy:       posting.Actor,
		}
		if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
			return err
		}

		stored, err := s.accountRepo.UpdateAccountBalance(ctx, acc.AccountID, posting.Amount, posting.Actor, now)
		if err != nil {
			return err
		}
		if !stored.Equal(expected) {
			return apperrors.Internal(fmt.Sprintf("balance of account %s is %s after posting, expected %s", acc.AccountID, stored, expected), nil)
		}
		posted = txn
		s.txManager.AfterCommit(ctx, func() {
			s.metrics.ObservePosting(string(txn.TransactionType))
			s.LogInfo(ctx, "Ledger posting completed",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("account_id", txn.AccountID),
				slog.String("type", string(txn.TransactionType)),
				slog.String("amount", txn.Amount.String()),
				slog.String("balance_after", txn.BalanceAfter.String()))
		})
		return nil
	})
	if err != nil {
		s.metrics.ObservePostingFailure(failureReason(err))
		s.logFailure(ctx, err, "Ledger posting failed",
			slog.String("account_id", posting.AccountID),
			slog.String("type", string(posting.TransactionType)),
			slog.String("amount", posting.Amount.String()))
		return nil, err
	}

	return &posted, nil
}

// PostDeposit credits the member's account of the requested type.
func (s *ledgerService) PostDeposit(ctx context.Context, memberID string, req dto.PostDepositRequest, actor string) (*domain.Transaction, error) {
	accountType, err := domain.ParseAccountType(req.AccountType, domain.Savings)
	if err != nil {
		return nil, err
	}
	if accountType == domain.Surplus {
		return nil, fmt.Errorf("%w: surplus accounts only receive distributions", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}
	return s.postForMember(ctx, memberID, accountType, domain.Posting{
		TransactionType: domain.Deposit,
		Amount:          req.Amount,
		FiscalYear:      req.FiscalYear,
		Description:     describe(req.Description, "Deposit to %s", accountType),
		Actor:           actor,
	})
}

// PostWithdrawal debits the member's savings or surplus account.
func (s *ledgerService) PostWithdrawal(ctx context.Context, memberID string, req dto.PostWithdrawalRequest, actor string) (*domain.Transaction, error) {
	accountType, err := domain.ParseAccountType(req.AccountType, domain.Savings)
	if err != nil {
		return nil, err
	}
	if accountType != domain.Savings && accountType != domain.Surplus {
		return nil, fmt.Errorf("%w: withdrawals are only made from savings or surplus accounts", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}
	return s.postForMember(ctx, memberID, accountType, domain.Posting{
		TransactionType: domain.Withdrawal,
		Amount:          req.Amount.Neg(),
		FiscalYear:      req.FiscalYear,
		Description:     describe(req.Description, "Withdrawal from %s", accountType),
		ReceiptRef:      req.ReceiptRef,
		Actor:           actor,
	})
}

// postForMember resolves an active member's account, posts to it and schedules the receipt.
func (s *ledgerService) postForMember(ctx context.Context, memberID string, accountType domain.AccountType, posting domain.Posting) (*domain.Transaction, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: member %s", apperrors.ErrNotFound, memberID)
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, fmt.Errorf("%w: member %s is inactive", apperrors.ErrInvalidStatus, member.MemberCode)
	}
	acc, err := s.accountRepo.FindAccountByMemberAndType(ctx, memberID, accountType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: member %s has no %s account", apperrors.ErrNotFound, member.MemberCode, accountType)
		}
		return nil, err
	}

	posting.AccountID = acc.AccountID
	if posting.FiscalYear == 0 {
		posting.FiscalYear = domain.FiscalYearFor(s.now())
	}
	txn, err := s.PostTransaction(ctx, posting)
	if err != nil {
		return nil, err
	}
	s.issueReceipts(ctx, *txn)
	return txn, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

// ListAccountTransactions retrieves a page of an account's history, newest first.
func (s *ledgerService) ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	filter := domain.TransactionFilter{FiscalYear: params.FiscalYear, Month: params.Month}
	if err := filter.Validate(); err != nil {
		return nil, nil, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	txns, next, err := s.transactionRepo.ListTransactionsByAccount(ctx, accountID, filter, limit, params.NextToken)
	if err != nil {
		s.logFailure(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		return nil, nil, err
	}
	return txns, next, nil
}

func describe(given, format string, args ...any) string {
	if d := strings.TrimSpace(given); d != "" {
		return d
	}
	return fmt.Sprintf(format, args...)
}

// sumAmounts adds up the amounts of txns.
func sumAmounts(txns []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount)
	}
	return total
}
