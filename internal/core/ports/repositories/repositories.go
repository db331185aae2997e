package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	SalesRepo      SalesRepositoryFacade
	PurchaseRepo   PurchaseRepositoryFacade
	CashRepo       CashRepositoryFacade
	SyncLogRepo    SyncLogRepositoryFacade
	SyncConfigRepo SyncConfigRepositoryFacade
	UserRepo       UserRepositoryFacade
}
