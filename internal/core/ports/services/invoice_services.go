package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its items. The payment status
	// on the returned invoice is re-derived against the current clock.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices of one type.
	ListInvoices(ctx context.Context, invoiceType domain.InvoiceType, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ListProductMovements retrieves a product's stock ledger in creation order.
	ListProductMovements(ctx context.Context, productID string, params dto.ListParams) (*dto.ListMovementsResponse, error)
}

// InvoiceWriterSvc defines the orchestrated invoice creation operations.
type InvoiceWriterSvc interface {
	// CreatePurchase atomically records a supplier invoice: header, items,
	// one stock-in movement per item, and the supplier balance increase.
	CreatePurchase(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// CreateSale atomically records a customer invoice: header, items, one
	// stock-out movement per item, and the customer balance increase. Fails
	// without side effects if any product lacks sufficient stock.
	CreateSale(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
