package services

import (
	portsrepo "github.com/SscSPs/coop_savings_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
)

// NewServiceContainer creates every service with its dependencies.
// The options (metrics, side-effect dispatcher, clock) are shared by all of them.
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Collaborators first, since the financial services dispatch to them.
	container.Notifier = NewNotificationService(repos.NotificationRepo, repos.MemberRepo, repos.WithdrawalRepo, options...)
	container.Receipts = NewReceiptService(repos.ReceiptRepo, repos.TransactionRepo, repos.MemberRepo, options...)

	withCollaborators := append([]ServiceOption{}, options...)
	withCollaborators = append(withCollaborators, WithNotifier(container.Notifier), WithReceipts(container.Receipts))

	ledger := NewLedgerService(repos.TxManager, repos.AccountRepo, repos.TransactionRepo, repos.MemberRepo, withCollaborators...)
	container.Ledger = ledger
	container.Account = NewAccountService(repos.AccountRepo, repos.MemberRepo, options...)
	container.Member = NewMemberService(repos.TxManager, repos.MemberRepo, repos.AccountRepo, ledger, withCollaborators...)
	container.Withdrawal = NewWithdrawalService(repos.TxManager, repos.WithdrawalRepo, repos.AccountRepo, repos.MemberRepo, ledger, withCollaborators...)
	container.Distribution = NewDistributionService(repos.TxManager, repos.DistributionRepo, ledger, options...)
	container.Reconciliation = NewReconciliationService(repos.AccountRepo, options...)

	return container
}
