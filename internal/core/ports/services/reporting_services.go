package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
)

// ReportingSvcFacade provides denormalized report projections and the
// rollup-drift reconciliation checks.
type ReportingSvcFacade interface {
	// StockReport returns the stock ledger joined with product data.
	StockReport(ctx context.Context, params dto.StockReportParams) (*dto.StockReportResponse, error)

	// OutstandingReport returns unpaid purchase (payable) or sale
	// (receivable) invoices with payment status recomputed against the
	// current clock.
	OutstandingReport(ctx context.Context, invoiceType domain.InvoiceType, partyID *string) (*dto.OutstandingReportResponse, error)

	// LowStockReport returns active products at or under minimum stock.
	LowStockReport(ctx context.Context) (*dto.LowStockReportResponse, error)

	// ReconcileProduct recomputes a product's stock from its movements and
	// compares it against the cached rollup. A mismatch is reported as
	// apperrors.ErrInvariantViolation.
	ReconcileProduct(ctx context.Context, productID string) (*dto.ReconciliationResponse, error)

	// ReconcileParty recomputes a party's balance from its invoices and
	// compares it against the cached rollup. A mismatch is reported as
	// apperrors.ErrInvariantViolation.
	ReconcileParty(ctx context.Context, partyID string) (*dto.ReconciliationResponse, error)
}
