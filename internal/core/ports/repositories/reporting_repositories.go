package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository provides denormalized read models and the from-scratch
// recomputations used to detect rollup drift.
type ReportingRepository interface {
	// StockReport returns stock-ledger rows joined with product data,
	// optionally filtered by product and movement-date range.
	StockReport(ctx context.Context, productID *string, from, to *time.Time) ([]domain.StockReportRow, error)

	// OutstandingReport returns invoices of the given type joined with their
	// counterparty. PaymentStatus on the rows is left to the service to
	// re-derive against the current clock.
	OutstandingReport(ctx context.Context, invoiceType domain.InvoiceType, partyID *string) ([]domain.OutstandingReportRow, error)

	// RecomputeProductStock sums quantity_in - quantity_out over a product's
	// movements, bypassing the cached rollup.
	RecomputeProductStock(ctx context.Context, productID string) (decimal.Decimal, error)

	// RecomputePartyBalance sums total_amount - paid_amount over a party's
	// invoices, bypassing the cached rollup.
	RecomputePartyBalance(ctx context.Context, partyID string) (decimal.Decimal, error)
}
