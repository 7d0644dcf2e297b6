package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/core/services"
	"github.com/SscSPs/coop_savings_app/internal/dto"
	"github.com/SscSPs/coop_savings_app/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testCoopID = "coop-test"
	staffActor = "staff-1"
)

// testClock is a settable clock shared by every service of a harness.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// harness wires the real services to an in-memory store.
type harness struct {
	t          *testing.T
	ctx        context.Context
	store      *memStore
	clock      *testClock
	dispatcher *services.SideEffectDispatcher
	metrics    *metrics.Metrics
	svc        *portssvc.ServiceContainer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := newMemStore()
	clock := &testClock{now: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	dispatcher := services.NewSideEffectDispatcher(4, time.Second, m)
	svc := services.NewServiceContainer(store.provider(),
		services.WithSideEffects(dispatcher),
		services.WithMetrics(m),
		services.WithClock(clock.Now),
	)
	h := &harness{t: t, ctx: context.Background(), store: store, clock: clock, dispatcher: dispatcher, metrics: m, svc: svc}
	t.Cleanup(dispatcher.Wait)
	return h
}

func (h *harness) affiliate(name, nationalID string) *domain.MemberAffiliation {
	h.t.Helper()
	a, err := h.svc.Member.Affiliate(h.ctx, testCoopID, dto.AffiliateMemberRequest{FullName: name, NationalID: nationalID}, staffActor)
	require.NoError(h.t, err)
	return a
}

func (h *harness) deposit(memberID string, accountType domain.AccountType, amount string) *domain.Transaction {
	h.t.Helper()
	txn, err := h.svc.Ledger.PostDeposit(h.ctx, memberID, dto.PostDepositRequest{
		AccountType: string(accountType),
		Amount:      decimal.RequireFromString(amount),
	}, staffActor)
	require.NoError(h.t, err)
	return txn
}

func (h *harness) account(memberID string, accountType domain.AccountType) domain.Account {
	h.t.Helper()
	acc, err := h.store.FindAccountByMemberAndType(h.ctx, memberID, accountType)
	require.NoError(h.t, err)
	return *acc
}

// requireLedgerConsistent checks every stored balance equals its transaction sum.
func (h *harness) requireLedgerConsistent() {
	h.t.Helper()
	mismatches, err := h.svc.Reconciliation.Reconcile(h.ctx)
	require.NoError(h.t, err)
	require.Empty(h.t, mismatches)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
