package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
	"github.com/SscSPs/inventory_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrInvoiceNoItems    = errors.New("invoice must have at least one item")
	ErrLineItemMismatch  = errors.New("item total does not equal quantity * unit price - discount")
	ErrInvalidTotals     = errors.New("invoice totals do not add up")
	ErrPartyTypeMismatch = errors.New("party type does not match invoice type")
)

// invoiceService orchestrates purchase and sale recording: it validates the
// request against catalog data, derives the initial payment status, and hands
// the whole write set to the repository for a single atomic transaction.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryWithTx
	productRepo portsrepo.ProductRepositoryFacade
	partyRepo   portsrepo.PartyRepositoryFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryWithTx, productRepo portsrepo.ProductRepositoryFacade, partyRepo portsrepo.PartyRepositoryFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		partyRepo:   partyRepo,
	}
}

// Ensure invoiceService implements the portssvc.InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreatePurchase atomically records a supplier invoice.
func (s *invoiceService) CreatePurchase(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	return s.createInvoice(ctx, domain.InvoiceTypePurchase, req, creatorUserID)
}

// CreateSale atomically records a customer invoice.
func (s *invoiceService) CreateSale(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	return s.createInvoice(ctx, domain.InvoiceTypeSale, req, creatorUserID)
}

// validateLineItems checks quantities, per-line arithmetic, non-negative
// amounts, and that the line totals sum to the header subtotal. The caller's
// arithmetic is verified, not silently recomputed, so a disagreement surfaces
// instead of persisting.
func (s *invoiceService) validateLineItems(req dto.CreateInvoiceRequest) error {
	if len(req.Items) == 0 {
		return ErrInvoiceNoItems
	}

	itemSum := decimal.Zero
	for i, item := range req.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: item %d quantity must be positive", apperrors.ErrValidation, i)
		}
		if item.UnitPrice.IsNegative() || item.DiscountAmount.IsNegative() {
			return fmt.Errorf("%w: item %d unit price and discount must not be negative", apperrors.ErrValidation, i)
		}
		expected := item.Quantity.Mul(item.UnitPrice).Sub(item.DiscountAmount)
		if !item.TotalAmount.Equal(expected) {
			return fmt.Errorf("%w: item %d total is %s, expected %s", ErrLineItemMismatch, i, item.TotalAmount, expected)
		}
		if item.TotalAmount.IsNegative() {
			return fmt.Errorf("%w: item %d discount exceeds line amount", apperrors.ErrValidation, i)
		}
		itemSum = itemSum.Add(item.TotalAmount)
	}

	if req.Subtotal.IsNegative() || req.TaxAmount.IsNegative() || req.DiscountAmount.IsNegative() {
		return fmt.Errorf("%w: subtotal, tax and discount must not be negative", apperrors.ErrValidation)
	}
	if !req.Subtotal.Equal(itemSum) {
		return fmt.Errorf("%w: subtotal is %s, item totals sum to %s", ErrInvalidTotals, req.Subtotal, itemSum)
	}
	expectedTotal := req.Subtotal.Add(req.TaxAmount).Sub(req.DiscountAmount)
	if !req.TotalAmount.Equal(expectedTotal) {
		return fmt.Errorf("%w: total is %s, expected subtotal + tax - discount = %s", ErrInvalidTotals, req.TotalAmount, expectedTotal)
	}
	if req.TotalAmount.IsNegative() {
		return fmt.Errorf("%w: invoice total must not be negative", apperrors.ErrValidation)
	}
	return nil
}

func (s *invoiceService) createInvoice(ctx context.Context, invoiceType domain.InvoiceType, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateLineItems(req); err != nil {
		return nil, err
	}

	// --- Party Validation ---
	party, err := s.partyRepo.FindPartyByID(ctx, req.PartyID)
	if err != nil {
		return nil, err
	}
	if party.PartyType != invoiceType.CounterpartyType() {
		return nil, fmt.Errorf("%w: %s invoice requires a %s, party %s is a %s",
			ErrPartyTypeMismatch, invoiceType, invoiceType.CounterpartyType(), party.Code, party.PartyType)
	}
	if !party.IsActive {
		return nil, fmt.Errorf("%w: party %s is inactive", apperrors.ErrValidation, party.Code)
	}

	// --- Product Validation ---
	productIDs := make([]string, 0, len(req.Items))
	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		logger.Error("Failed to fetch products for invoice creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	for _, id := range productIDs {
		product, found := products[id]
		if !found {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, product.Code)
		}
	}

	// Advisory stock pre-check for sales. The authoritative check happens
	// under row locks inside the repository transaction.
	if invoiceType == domain.InvoiceTypeSale {
		required := make(map[string]decimal.Decimal, len(productIDs))
		for _, item := range req.Items {
			required[item.ProductID] = required[item.ProductID].Add(item.Quantity)
		}
		for id, qty := range required {
			if products[id].StockQuantity.LessThan(qty) {
				return nil, fmt.Errorf("%w: product %s has %s in stock, cannot sell %s",
					apperrors.ErrInsufficientStock, products[id].Code, products[id].StockQuantity, qty)
			}
		}
	}

	// --- Build Domain Objects ---
	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	items := make([]domain.InvoiceItem, len(req.Items))
	for i, itemReq := range req.Items {
		items[i] = domain.InvoiceItem{
			ItemID:         uuid.NewString(),
			InvoiceID:      invoiceID,
			ProductID:      itemReq.ProductID,
			Quantity:       itemReq.Quantity,
			UnitPrice:      itemReq.UnitPrice,
			DiscountAmount: itemReq.DiscountAmount,
			TotalAmount:    itemReq.TotalAmount,
		}
	}

	invoice := domain.Invoice{
		InvoiceID:       invoiceID,
		InvoiceType:     invoiceType,
		InvoiceNumber:   req.InvoiceNumber,
		PartyID:         req.PartyID,
		TransactionDate: req.TransactionDate,
		DueDate:         req.DueDate,
		Subtotal:        req.Subtotal,
		TaxAmount:       req.TaxAmount,
		DiscountAmount:  req.DiscountAmount,
		TotalAmount:     req.TotalAmount,
		PaidAmount:      decimal.Zero,
		PaymentStatus:   domain.DerivePaymentStatus(decimal.Zero, req.TotalAmount, req.DueDate, now),
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// --- Persistence ---
	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, items); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("invoice_number", req.InvoiceNumber))
		return nil, err
	}

	logger.Info("Invoice created",
		slog.String("invoice_id", invoiceID),
		slog.String("invoice_type", string(invoiceType)),
		slog.String("invoice_number", req.InvoiceNumber),
		slog.Int("item_count", len(items)))

	invoice.Items = items
	return &invoice, nil
}

// GetInvoiceByID retrieves an invoice with its items. The payment status on
// the returned invoice is re-derived against the current clock, so an unpaid
// invoice whose due date has passed reads as OVERDUE without any write.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	items, err := s.invoiceRepo.FindItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	invoice.PaymentStatus = invoice.StatusAt(time.Now().UTC())
	return invoice, nil
}

// ListInvoices retrieves a paginated list of invoices of one type, with
// payment statuses re-derived against the current clock.
func (s *invoiceService) ListInvoices(ctx context.Context, invoiceType domain.InvoiceType, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	listParams := dto.ListParams{Limit: params.Limit, NextToken: params.NextToken}
	filter := portsrepo.ListInvoicesFilter{InvoiceType: invoiceType, PartyID: params.PartyID}

	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, filter, listParams.EffectiveLimit(), params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	now := time.Now().UTC()
	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		invoices[i].PaymentStatus = invoices[i].StatusAt(now)
		responses[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	return &dto.ListInvoicesResponse{Invoices: responses, NextToken: nextToken}, nil
}

// ListProductMovements retrieves a product's stock ledger.
func (s *invoiceService) ListProductMovements(ctx context.Context, productID string, params dto.ListParams) (*dto.ListMovementsResponse, error) {
	// Verify the product exists so an unknown ID reads as 404, not an empty page.
	if _, err := s.productRepo.FindProductByID(ctx, productID); err != nil {
		return nil, err
	}

	movements, nextToken, err := s.invoiceRepo.ListMovementsByProduct(ctx, productID, params.EffectiveLimit(), params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	responses := make([]dto.MovementResponse, len(movements))
	for i := range movements {
		responses[i] = dto.ToMovementResponse(&movements[i])
	}
	return &dto.ListMovementsResponse{Movements: responses, NextToken: nextToken}, nil
}
