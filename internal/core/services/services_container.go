package services

import (
	portsrepo "github.com/SscSPs/inventory_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Product = NewProductService(repos.ProductRepo)
	container.Party = NewPartyService(repos.PartyRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.ProductRepo, repos.PartyRepo)
	container.Settlement = NewSettlementService(repos.SettlementRepo, repos.InvoiceRepo, repos.PartyRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.ProductRepo, repos.PartyRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ProductSvcFacade    = (*productService)(nil)
	_ portssvc.PartySvcFacade      = (*partyService)(nil)
	_ portssvc.InvoiceSvcFacade    = (*invoiceService)(nil)
	_ portssvc.SettlementSvcFacade = (*settlementService)(nil)
	_ portssvc.ReportingSvcFacade  = (*reportingService)(nil)
)
