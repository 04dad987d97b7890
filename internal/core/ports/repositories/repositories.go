package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager       TransactionManager
	LedgerRepo      LedgerEntryRepositoryFacade
	SalesRepo       SalesRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	SubCategoryRepo SubCategoryRepositoryFacade
	UserRepo        UserRepositoryFacade
	RoleRepo        RoleRepositoryFacade
}
