package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ListInvoicesFilter narrows invoice listings.
type ListInvoicesFilter struct {
	InvoiceType domain.InvoiceType
	PartyID     *string
}

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice header by its surrogate ID.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByNumber retrieves an invoice by type and business key.
	FindInvoiceByNumber(ctx context.Context, invoiceType domain.InvoiceType, invoiceNumber string) (*domain.Invoice, error)

	// FindItemsByInvoiceID retrieves the line items of an invoice.
	FindItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error)

	// ListInvoices retrieves a paginated, filtered invoice list.
	ListInvoices(ctx context.Context, filter ListInvoicesFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines the single write operation for invoices.
type InvoiceWriter interface {
	// SaveInvoice persists an invoice with its items, appends one stock
	// movement per item (computing balance-after under product row locks),
	// updates each product's cached stock and the counterparty's balance, all
	// within one database transaction. A sale that would drive any product's
	// stock negative fails with apperrors.ErrInsufficientStock and persists
	// nothing.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error
}

// StockMovementReader defines read operations over the stock ledger.
type StockMovementReader interface {
	// ListMovementsByProduct retrieves a product's movements in creation order.
	ListMovementsByProduct(ctx context.Context, productID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error)
}

// InvoiceLocker defines in-transaction operations against invoice rows. The
// settlement repository uses these to reconcile an invoice's paid amount within
// its own transaction.
type InvoiceLocker interface {
	// FindInvoiceByIDForUpdate retrieves an invoice and locks its row for the
	// duration of the transaction.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error)

	// UpdateInvoicePaymentInTx sets the invoice's paid amount and payment
	// status within an existing transaction.
	UpdateInvoicePaymentInTx(ctx context.Context, tx pgx.Tx, invoiceID string, paidAmount decimal.Decimal, status domain.PaymentStatus, userID string, updatedAt time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	InvoiceLocker
	StockMovementReader
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
