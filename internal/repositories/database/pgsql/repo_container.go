package pgsql

import (
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	"github.com/SscSPs/coop_savings_app/internal/platform/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository onto one pool.
// maxRetries bounds how often a conflicting unit of work is re-run.
func NewRepositoryProvider(dbPool *pgxpool.Pool, m *metrics.Metrics, maxRetries int) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        newPgxTxManager(dbPool, maxRetries, m),
		MemberRepo:       newPgxMemberRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		WithdrawalRepo:   newPgxWithdrawalRequestRepository(dbPool),
		DistributionRepo: newPgxDistributionRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
		ReceiptRepo:      newPgxReceiptRepository(dbPool),
	}
}
