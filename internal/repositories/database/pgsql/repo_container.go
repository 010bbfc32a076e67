package pgsql

import (
	portsrepo "github.com/SscSPs/inventory_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(dbPool)
	partyRepo := newPgxPartyRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool, productRepo, partyRepo)
	settlementRepo := newPgxSettlementRepository(dbPool, invoiceRepo, partyRepo)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProductRepo:    productRepo,
		PartyRepo:      partyRepo,
		InvoiceRepo:    invoiceRepo,
		SettlementRepo: settlementRepo,
		ReportingRepo:  reportingRepo,
	}
}
