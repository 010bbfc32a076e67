package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
	"github.com/SscSPs/inventory_ledger_app/internal/middleware"
)

// reportingService provides read-model projections and the rollup-drift
// reconciliation checks.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	productRepo   portsrepo.ProductRepositoryFacade
	partyRepo     portsrepo.PartyRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, productRepo portsrepo.ProductRepositoryFacade, partyRepo portsrepo.PartyRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		productRepo:   productRepo,
		partyRepo:     partyRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// StockReport returns the stock ledger joined with product data.
func (s *reportingService) StockReport(ctx context.Context, params dto.StockReportParams) (*dto.StockReportResponse, error) {
	rows, err := s.reportingRepo.StockReport(ctx, params.ProductID, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("failed to build stock report: %w", err)
	}
	return dto.ToStockReportResponse(rows), nil
}

// OutstandingReport returns unpaid invoices of the given type. Payment
// statuses are recomputed against the current clock; the stored column is
// never trusted for reads.
func (s *reportingService) OutstandingReport(ctx context.Context, invoiceType domain.InvoiceType, partyID *string) (*dto.OutstandingReportResponse, error) {
	rows, err := s.reportingRepo.OutstandingReport(ctx, invoiceType, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to build outstanding report: %w", err)
	}
	now := time.Now().UTC()
	for i := range rows {
		rows[i].PaymentStatus = domain.DerivePaymentStatus(rows[i].PaidAmount, rows[i].TotalAmount, rows[i].DueDate, now)
	}
	return dto.ToOutstandingReportResponse(rows), nil
}

// LowStockReport returns active products at or under their minimum stock.
func (s *reportingService) LowStockReport(ctx context.Context) (*dto.LowStockReportResponse, error) {
	products, err := s.productRepo.ListProductsBelowMinimum(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build low stock report: %w", err)
	}
	res := make([]dto.ProductResponse, len(products))
	for i := range products {
		res[i] = dto.ToProductResponse(&products[i])
	}
	return &dto.LowStockReportResponse{Products: res}, nil
}

// ReconcileProduct recomputes a product's stock from its movement history and
// compares it against the cached rollup. Any drift means a write bypassed the
// ledger transaction and is reported as an invariant violation.
func (s *reportingService) ReconcileProduct(ctx context.Context, productID string) (*dto.ReconciliationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	recomputed, err := s.reportingRepo.RecomputeProductStock(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.StockQuantity.Equal(recomputed) {
		logger.Error("Product stock rollup drift detected",
			slog.String("product_id", productID),
			slog.String("cached", product.StockQuantity.String()),
			slog.String("recomputed", recomputed.String()))
		return &dto.ReconciliationResponse{
				EntityID:   productID,
				Cached:     product.StockQuantity,
				Recomputed: recomputed,
				Consistent: false,
			}, fmt.Errorf("%w: product %s cached stock %s does not match recomputed %s",
				apperrors.ErrInvariantViolation, product.Code, product.StockQuantity, recomputed)
	}

	return &dto.ReconciliationResponse{
		EntityID:   productID,
		Cached:     product.StockQuantity,
		Recomputed: recomputed,
		Consistent: true,
	}, nil
}

// ReconcileParty recomputes a party's balance from its invoices and
// on-account settlements and compares it against the cached rollup.
func (s *reportingService) ReconcileParty(ctx context.Context, partyID string) (*dto.ReconciliationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	recomputed, err := s.reportingRepo.RecomputePartyBalance(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if !party.CurrentBalance.Equal(recomputed) {
		logger.Error("Party balance rollup drift detected",
			slog.String("party_id", partyID),
			slog.String("cached", party.CurrentBalance.String()),
			slog.String("recomputed", recomputed.String()))
		return &dto.ReconciliationResponse{
				EntityID:   partyID,
				Cached:     party.CurrentBalance,
				Recomputed: recomputed,
				Consistent: false,
			}, fmt.Errorf("%w: party %s cached balance %s does not match recomputed %s",
				apperrors.ErrInvariantViolation, party.Code, party.CurrentBalance, recomputed)
	}

	return &dto.ReconciliationResponse{
		EntityID:   partyID,
		Cached:     party.CurrentBalance,
		Recomputed: recomputed,
		Consistent: true,
	}, nil
}
