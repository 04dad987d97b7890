package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Access      AccessSvcFacade
	PettyCash   PettyCashSvcFacade
	CashFlow    CashFlowSvcFacade
	Sales       SalesSvcFacade
	Category    CategorySvcFacade
	SubCategory SubCategorySvcFacade
	User        UserSvcFacade
	Role        RoleSvcFacade
	Token       TokenSvcFacade
	Reporting   ReportingService
}
