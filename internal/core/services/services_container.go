package services

import (
	"github.com/SscSPs/kasbook/internal/core/balance"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/platform/config"
)

// Printing bundles the optional report output collaborators.
type Printing struct {
	Templates portssvc.ReportTemplates
	PDF       portssvc.PDFRenderer   // nil disables PDF output
	Archive   portssvc.ReportArchive // nil disables archiving
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, printing Printing) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	calc := balance.NewCalculator(cfg.Entities, cfg.Location)

	// Initialize access service first since every other service authorizes through it
	container.Access = NewAccessService(repos.UserRepo, repos.RoleRepo, cfg.Entities)
	authorizer := WithEntityAuthorizer(container.Access)

	container.PettyCash = NewPettyCashService(
		repos.TxManager,
		repos.LedgerRepo,
		repos.CategoryRepo,
		container.Access,
		calc,
		cfg.ApprovalThreshold,
	)
	container.CashFlow = NewCashFlowService(repos.LedgerRepo, repos.SubCategoryRepo, container.Access, calc)
	container.Sales = NewSalesService(repos.SalesRepo, container.Access, cfg.Location)

	container.Category = NewCategoryService(repos.CategoryRepo, authorizer)
	container.SubCategory = NewSubCategoryService(repos.SubCategoryRepo, authorizer)
	container.User = NewUserService(repos.UserRepo, repos.RoleRepo, container.Access)
	container.Role = NewRoleService(repos.RoleRepo, authorizer)
	container.Token = NewTokenService(cfg)

	reportingOptions := []ReportingServiceOption{}
	if printing.PDF != nil {
		reportingOptions = append(reportingOptions, WithPDFRenderer(printing.PDF))
	}
	if printing.Archive != nil {
		reportingOptions = append(reportingOptions, WithReportArchive(printing.Archive))
	}
	container.Reporting = NewReportingService(
		repos.LedgerRepo,
		repos.SubCategoryRepo,
		container.Access,
		calc,
		printing.Templates,
		reportingOptions...,
	)

	return container
}
