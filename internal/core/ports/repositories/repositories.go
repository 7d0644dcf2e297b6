package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager        TransactionManager
	MemberRepo       MemberRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	WithdrawalRepo   WithdrawalRequestRepositoryFacade
	DistributionRepo DistributionRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	ReceiptRepo      ReceiptRepositoryFacade
}
