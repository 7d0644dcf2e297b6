package services_test

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for the PostgreSQL repositories.
// A unit of work holds the store lock for its whole duration and restores a
// snapshot when it fails, which gives the same isolation the row locks give.
type memStore struct {
	mu sync.Mutex

	members       map[string]domain.Member
	accounts      map[string]domain.Account
	transactions  []domain.Transaction
	requests      map[string]domain.WithdrawalRequest
	distributions []domain.DistributionSummary
	notifications []domain.Notification
	receipts      map[string]domain.Receipt
	receiptSeq    int64
	sequences     map[string]int

	calls    map[string]int
	failures map[string]injectedFailure
}

type injectedFailure struct {
	afterCalls int
	err        error
}

type memTxKey struct{}

var (
	_ portsrepo.TransactionManager                = (*memStore)(nil)
	_ portsrepo.MemberRepositoryFacade            = (*memStore)(nil)
	_ portsrepo.AccountRepositoryFacade           = (*memStore)(nil)
	_ portsrepo.TransactionRepositoryFacade       = (*memStore)(nil)
	_ portsrepo.WithdrawalRequestRepositoryFacade = (*memStore)(nil)
	_ portsrepo.DistributionRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.NotificationRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.ReceiptRepositoryFacade           = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		members:   map[string]domain.Member{},
		accounts:  map[string]domain.Account{},
		requests:  map[string]domain.WithdrawalRequest{},
		receipts:  map[string]domain.Receipt{},
		sequences: map[string]int{},
		calls:     map[string]int{},
		failures:  map[string]injectedFailure{},
	}
}

func (s *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        s,
		MemberRepo:       s,
		AccountRepo:      s,
		TransactionRepo:  s,
		WithdrawalRepo:   s,
		DistributionRepo: s,
		NotificationRepo: s,
		ReceiptRepo:      s,
	}
}

// injectFailure makes method fail with err once it has succeeded afterCalls times.
func (s *memStore) injectFailure(method string, afterCalls int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = injectedFailure{afterCalls: afterCalls, err: err}
	s.calls[method] = 0
}

func (s *memStore) clearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]injectedFailure{}
}

// called must be invoked with the lock held.
func (s *memStore) called(method string) error {
	s.calls[method]++
	if f, ok := s.failures[method]; ok && s.calls[method] > f.afterCalls {
		return f.err
	}
	return nil
}

// memTx is the unit of work carried under memTxKey.
type memTx struct {
	afterCommit []func()
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(memTxKey{}).(*memTx)
	return ok
}

// enter takes the store lock unless ctx already runs inside a unit of work.
func (s *memStore) enter(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *memStore) requireTx(ctx context.Context) error {
	if !inTx(ctx) {
		return apperrors.Internal("locking read outside a transaction", nil)
	}
	return nil
}

type memSnapshot struct {
	members       map[string]domain.Member
	accounts      map[string]domain.Account
	transactions  []domain.Transaction
	requests      map[string]domain.WithdrawalRequest
	distributions []domain.DistributionSummary
	notifications []domain.Notification
	receipts      map[string]domain.Receipt
	receiptSeq    int64
	sequences     map[string]int
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	return memSnapshot{
		members:       copyMap(s.members),
		accounts:      copyMap(s.accounts),
		transactions:  append([]domain.Transaction(nil), s.transactions...),
		requests:      copyMap(s.requests),
		distributions: append([]domain.DistributionSummary(nil), s.distributions...),
		notifications: append([]domain.Notification(nil), s.notifications...),
		receipts:      copyMap(s.receipts),
		receiptSeq:    s.receiptSeq,
		sequences:     copyMap(s.sequences),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.members = snap.members
	s.accounts = snap.accounts
	s.transactions = snap.transactions
	s.requests = snap.requests
	s.distributions = snap.distributions
	s.notifications = snap.notifications
	s.receipts = snap.receipts
	s.receiptSeq = snap.receiptSeq
	s.sequences = snap.sequences
}

// WithinTransaction runs fn holding the store lock and rolls back on error.
func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	tx := &memTx{}
	err := func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		snap := s.snapshot()
		if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
			s.restore(snap)
			return err
		}
		return nil
	}()
	if err != nil {
		return err
	}
	for _, hook := range tx.afterCommit {
		hook()
	}
	return nil
}

func (s *memStore) AfterCommit(ctx context.Context, fn func()) {
	tx, ok := ctx.Value(memTxKey{}).(*memTx)
	if !ok {
		fn()
		return
	}
	tx.afterCommit = append(tx.afterCommit, fn)
}

// --- members ---

func (s *memStore) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	defer s.enter(ctx)()
	if err := s.called("FindMemberByID"); err != nil {
		return nil, err
	}
	m, ok := s.members[memberID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &m, nil
}

func (s *memStore) ListMembers(ctx context.Context, cooperativeID string, activeOnly bool, limit int, offset int) ([]domain.Member, error) {
	defer s.enter(ctx)()
	out := []domain.Member{}
	for _, m := range s.members {
		if m.CooperativeID == cooperativeID && (!activeOnly || m.IsActive) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CodeYear != out[j].CodeYear {
			return out[i].CodeYear < out[j].CodeYear
		}
		return out[i].Consecutive < out[j].Consecutive
	})
	if offset >= len(out) {
		return []domain.Member{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) SaveMember(ctx context.Context, member domain.Member) error {
	defer s.enter(ctx)()
	if err := s.called("SaveMember"); err != nil {
		return err
	}
	for _, m := range s.members {
		if m.CooperativeID == member.CooperativeID && m.NationalID == member.NationalID {
			return fmt.Errorf("%w: national ID %s", apperrors.ErrDuplicate, member.NationalID)
		}
	}
	s.members[member.MemberID] = member
	return nil
}

func (s *memStore) MarkMemberLiquidated(ctx context.Context, memberID string, liquidatedAt time.Time, userID string, now time.Time) error {
	defer s.enter(ctx)()
	if err := s.called("MarkMemberLiquidated"); err != nil {
		return err
	}
	m, ok := s.members[memberID]
	if !ok {
		return apperrors.ErrNotFound
	}
	m.IsActive = false
	m.LastLiquidationDate = &liquidatedAt
	m.LastUpdatedAt = now
	m.LastUpdatedBy = userID
	s.members[memberID] = m
	return nil
}

func (s *memStore) FindMemberForUpdate(ctx context.Context, memberID string) (*domain.Member, error) {
	if err := s.requireTx(ctx); err != nil {
		return nil, err
	}
	return s.FindMemberByID(ctx, memberID)
}

func (s *memStore) NextMemberConsecutive(ctx context.Context, cooperativeID string, year int) (int, error) {
	if err := s.requireTx(ctx); err != nil {
		return 0, err
	}
	if err := s.called("NextMemberConsecutive"); err != nil {
		return 0, err
	}
	key := fmt.Sprintf("%s/%d", cooperativeID, year)
	s.sequences[key]++
	return s.sequences[key], nil
}

// --- accounts ---

func (s *memStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	defer s.enter(ctx)()
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (s *memStore) FindAccountByMemberAndType(ctx context.Context, memberID string, accountType domain.AccountType) (*domain.Account, error) {
	defer s.enter(ctx)()
	for _, acc := range s.accounts {
		if acc.MemberID == memberID && acc.AccountType == accountType {
			return &acc, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) ListAccountsByMember(ctx context.Context, memberID string) ([]domain.Account, error) {
	defer s.enter(ctx)()
	return s.accountsOf(memberID), nil
}

func (s *memStore) accountsOf(memberID string) []domain.Account {
	out := []domain.Account{}
	for _, acc := range s.accounts {
		if acc.MemberID == memberID {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out
}

func (s *memStore) FindBalanceMismatches(ctx context.Context) ([]domain.BalanceMismatch, error) {
	defer s.enter(ctx)()
	ledger := map[string]decimal.Decimal{}
	for _, t := range s.transactions {
		if t.Status == domain.TransactionCompleted {
			ledger[t.AccountID] = ledger[t.AccountID].Add(t.Amount)
		}
	}
	out := []domain.BalanceMismatch{}
	for _, acc := range s.accounts {
		if !acc.CurrentBalance.Equal(ledger[acc.AccountID]) {
			out = append(out, domain.BalanceMismatch{
				AccountID:     acc.AccountID,
				MemberID:      acc.MemberID,
				AccountType:   acc.AccountType,
				StoredBalance: acc.CurrentBalance,
				LedgerBalance: ledger[acc.AccountID],
			})
		}
	}
	return out, nil
}

func (s *memStore) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	defer s.enter(ctx)()
	if err := s.called("SaveAccounts"); err != nil {
		return err
	}
	for _, acc := range accounts {
		s.accounts[acc.AccountID] = acc
	}
	return nil
}

func (s *memStore) FindAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	if err := s.requireTx(ctx); err != nil {
		return nil, err
	}
	return s.FindAccountByID(ctx, accountID)
}

func (s *memStore) FindAccountsByMemberForUpdate(ctx context.Context, memberID string) ([]domain.Account, error) {
	if err := s.requireTx(ctx); err != nil {
		return nil, err
	}
	return s.accountsOf(memberID), nil
}

func (s *memStore) UpdateAccountBalance(ctx context.Context, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	defer s.enter(ctx)()
	if err := s.called("UpdateAccountBalance"); err != nil {
		return decimal.Zero, err
	}
	acc, ok := s.accounts[accountID]
	if !ok {
		return decimal.Zero, apperrors.ErrNotFound
	}
	acc.CurrentBalance = acc.CurrentBalance.Add(delta)
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = userID
	s.accounts[accountID] = acc
	return acc.CurrentBalance, nil
}

// setBalance corrupts a stored balance behind the ledger's back.
func (s *memStore) setBalance(accountID string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accounts[accountID]
	acc.CurrentBalance = balance
	s.accounts[accountID] = acc
}

// --- transactions ---

func (s *memStore) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	defer s.enter(ctx)()
	for _, t := range s.transactions {
		if t.TransactionID == transactionID {
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) ListTransactionsByAccount(ctx context.Context, accountID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	defer s.enter(ctx)()
	matching := []domain.Transaction{}
	for i := len(s.transactions) - 1; i >= 0; i-- {
		t := s.transactions[i]
		if t.AccountID != accountID {
			continue
		}
		if filter.FiscalYear != nil && t.FiscalYear != *filter.FiscalYear {
			continue
		}
		if filter.Month != nil && int(t.CreatedAt.UTC().Month()) != *filter.Month {
			continue
		}
		matching = append(matching, t)
	}
	start := 0
	if nextToken != nil {
		n, err := strconv.Atoi(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		start = n
	}
	if start > len(matching) {
		start = len(matching)
	}
	end := start + limit
	if end >= len(matching) {
		return matching[start:], nil, nil
	}
	next := strconv.Itoa(end)
	return matching[start:end], &next, nil
}

func (s *memStore) ListTransactionsByDistribution(ctx context.Context, distributionID string) ([]domain.Transaction, error) {
	defer s.enter(ctx)()
	out := []domain.Transaction{}
	for _, t := range s.transactions {
		if t.DistributionID != nil && *t.DistributionID == distributionID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memStore) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	defer s.enter(ctx)()
	if err := s.called("SaveTransaction"); err != nil {
		return err
	}
	s.transactions = append(s.transactions, txn)
	return nil
}

// transactionsOf returns every stored transaction of an account, oldest first.
func (s *memStore) transactionsOf(accountID string) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Transaction{}
	for _, t := range s.transactions {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}

// --- withdrawal requests ---

func (s *memStore) FindWithdrawalRequestByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	defer s.enter(ctx)()
	r, ok := s.requests[requestID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (s *memStore) ListWithdrawalRequests(ctx context.Context, filter domain.WithdrawalRequestFilter, limit int, offset int) ([]domain.WithdrawalRequest, error) {
	defer s.enter(ctx)()
	out := []domain.WithdrawalRequest{}
	for _, r := range s.requests {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.MemberID != nil && r.MemberID != *filter.MemberID {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []domain.WithdrawalRequest{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) SaveWithdrawalRequest(ctx context.Context, req domain.WithdrawalRequest) error {
	defer s.enter(ctx)()
	s.requests[req.RequestID] = req
	return nil
}

func (s *memStore) UpdateWithdrawalRequestResolution(ctx context.Context, req domain.WithdrawalRequest) error {
	defer s.enter(ctx)()
	if err := s.called("UpdateWithdrawalRequestResolution"); err != nil {
		return err
	}
	stored, ok := s.requests[req.RequestID]
	if !ok || !stored.IsPending() {
		return fmt.Errorf("%w: withdrawal request %s is no longer pending", apperrors.ErrInvalidStatus, req.RequestID)
	}
	s.requests[req.RequestID] = req
	return nil
}

func (s *memStore) FindWithdrawalRequestForUpdate(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	if err := s.requireTx(ctx); err != nil {
		return nil, err
	}
	return s.FindWithdrawalRequestByID(ctx, requestID)
}

// --- distributions ---

func (s *memStore) FindDistributionByFiscalYear(ctx context.Context, cooperativeID string, fiscalYear int) (*domain.DistributionSummary, error) {
	defer s.enter(ctx)()
	for _, d := range s.distributions {
		if d.CooperativeID == cooperativeID && d.FiscalYear == fiscalYear {
			return &d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) ListDistributions(ctx context.Context, cooperativeID string) ([]domain.DistributionSummary, error) {
	defer s.enter(ctx)()
	out := []domain.DistributionSummary{}
	for _, d := range s.distributions {
		if d.CooperativeID == cooperativeID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FiscalYear > out[j].FiscalYear })
	return out, nil
}

func (s *memStore) ListContributionCandidates(ctx context.Context, cooperativeID string, fiscalYear int) ([]domain.ContributionCandidate, error) {
	defer s.enter(ctx)()
	out := []domain.ContributionCandidate{}
	for _, m := range s.members {
		if m.CooperativeID != cooperativeID {
			continue
		}
		c := domain.ContributionCandidate{Member: m, Contributions: decimal.Zero}
		for _, acc := range s.accountsOf(m.MemberID) {
			switch acc.AccountType {
			case domain.Surplus:
				c.SurplusAccountID = acc.AccountID
			case domain.Contributions:
				for _, t := range s.transactions {
					if t.AccountID == acc.AccountID && t.FiscalYear == fiscalYear &&
						t.TransactionType == domain.Deposit && t.Status == domain.TransactionCompleted {
						c.Contributions = c.Contributions.Add(t.Amount)
					}
				}
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Member.MemberCode < out[j].Member.MemberCode })
	return out, nil
}

func (s *memStore) SaveDistribution(ctx context.Context, dist domain.DistributionSummary) error {
	defer s.enter(ctx)()
	if err := s.called("SaveDistribution"); err != nil {
		return err
	}
	for _, d := range s.distributions {
		if d.CooperativeID == dist.CooperativeID && d.FiscalYear == dist.FiscalYear {
			return apperrors.ErrDuplicateDistribution
		}
	}
	s.distributions = append(s.distributions, dist)
	return nil
}

func (s *memStore) LockDistributionYear(ctx context.Context, cooperativeID string, fiscalYear int) error {
	return s.requireTx(ctx)
}

// --- notifications ---

func (s *memStore) SaveNotification(ctx context.Context, n domain.Notification) error {
	defer s.enter(ctx)()
	if err := s.called("SaveNotification"); err != nil {
		return err
	}
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *memStore) ListNotifications(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	defer s.enter(ctx)()
	out := []domain.Notification{}
	for i := len(s.notifications) - 1; i >= 0; i-- {
		n := s.notifications[i]
		if filter.Recipient != "" && n.Recipient != filter.Recipient {
			continue
		}
		if filter.MemberID != nil && (n.MemberID == nil || *n.MemberID != *filter.MemberID) {
			continue
		}
		if filter.OnlyPending && n.Processed {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *memStore) MarkNotificationsProcessed(ctx context.Context, recipient domain.NotificationRecipient, kind domain.NotificationKind, referenceID string, now time.Time) (int64, error) {
	defer s.enter(ctx)()
	var n int64
	for i := range s.notifications {
		entry := &s.notifications[i]
		if entry.Recipient == recipient && entry.Kind == kind && entry.ReferenceID == referenceID && !entry.Processed {
			entry.Processed = true
			at := now
			entry.ProcessedAt = &at
			n++
		}
	}
	return n, nil
}

// --- receipts ---

func (s *memStore) SaveReceipt(ctx context.Context, receipt domain.Receipt) (*domain.Receipt, error) {
	defer s.enter(ctx)()
	if existing, ok := s.receipts[receipt.TransactionID]; ok {
		return &existing, nil
	}
	s.receiptSeq++
	receipt.ReceiptNumber = s.receiptSeq
	s.receipts[receipt.TransactionID] = receipt
	return &receipt, nil
}

func (s *memStore) FindReceiptByTransactionID(ctx context.Context, transactionID string) (*domain.Receipt, error) {
	defer s.enter(ctx)()
	r, ok := s.receipts[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (s *memStore) receiptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.receipts)
}
