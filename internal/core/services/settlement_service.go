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
	ErrSettlementNotPositive = errors.New("payment amount must be positive")
	ErrInvoiceTypeMismatch   = errors.New("invoice type does not match settlement type")
	ErrInvoicePartyMismatch  = errors.New("invoice does not belong to the given party")
)

// settlementService applies and reverses payments. Payable and receivable
// settlements follow the same reconciliation rules, parameterized only by
// which invoice and party types they bind to.
type settlementService struct {
	settlementRepo portsrepo.SettlementRepositoryWithTx
	invoiceRepo    portsrepo.InvoiceRepositoryWithTx
	partyRepo      portsrepo.PartyRepositoryFacade
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(settlementRepo portsrepo.SettlementRepositoryWithTx, invoiceRepo portsrepo.InvoiceRepositoryWithTx, partyRepo portsrepo.PartyRepositoryFacade) portssvc.SettlementSvcFacade {
	return &settlementService{
		settlementRepo: settlementRepo,
		invoiceRepo:    invoiceRepo,
		partyRepo:      partyRepo,
	}
}

// Ensure settlementService implements the portssvc.SettlementSvcFacade interface
var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// RecordSettlement applies a payment. When the request targets an invoice,
// the invoice's paid amount and payment status and the party's balance are
// updated in the same transaction as the settlement insert; overpayment is
// rejected before anything is written. Without an invoice it is an on-account
// payment adjusting only the party balance.
func (s *settlementService) RecordSettlement(ctx context.Context, settlementType domain.SettlementType, req dto.CreateSettlementRequest, creatorUserID string) (*domain.Settlement, *domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PaymentAmount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: got %s", ErrSettlementNotPositive, req.PaymentAmount)
	}

	// --- Party Validation ---
	party, err := s.partyRepo.FindPartyByID(ctx, req.PartyID)
	if err != nil {
		return nil, nil, err
	}
	if party.PartyType != settlementType.PartyType() {
		return nil, nil, fmt.Errorf("%w: %s settlement requires a %s, party %s is a %s",
			ErrPartyTypeMismatch, settlementType, settlementType.PartyType(), party.Code, party.PartyType)
	}
	if !party.IsActive {
		return nil, nil, fmt.Errorf("%w: party %s is inactive", apperrors.ErrValidation, party.Code)
	}

	// --- Invoice Validation ---
	// Pre-checks only; the overpayment check is redone under the row lock.
	if req.InvoiceID != nil {
		invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, *req.InvoiceID)
		if err != nil {
			return nil, nil, err
		}
		if invoice.InvoiceType != settlementType.InvoiceType() {
			return nil, nil, fmt.Errorf("%w: %s settlement cannot target a %s invoice",
				ErrInvoiceTypeMismatch, settlementType, invoice.InvoiceType)
		}
		if invoice.PartyID != req.PartyID {
			return nil, nil, fmt.Errorf("%w: invoice %s belongs to a different party", ErrInvoicePartyMismatch, invoice.InvoiceNumber)
		}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentMethodCash
	}

	now := time.Now().UTC()
	settlement := domain.Settlement{
		SettlementID:    uuid.NewString(),
		SettlementType:  settlementType,
		PaymentNumber:   req.PaymentNumber,
		PartyID:         req.PartyID,
		InvoiceID:       req.InvoiceID,
		PaymentDate:     req.PaymentDate,
		PaymentAmount:   req.PaymentAmount,
		PaymentMethod:   paymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		CreatedAt:       now,
		CreatedBy:       creatorUserID,
	}

	updatedInvoice, err := s.settlementRepo.SaveSettlement(ctx, settlement)
	if err != nil {
		logger.Error("Failed to save settlement", slog.String("error", err.Error()), slog.String("payment_number", req.PaymentNumber))
		return nil, nil, err
	}

	logger.Info("Settlement recorded",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("settlement_type", string(settlementType)),
		slog.String("payment_number", req.PaymentNumber))
	return &settlement, updatedInvoice, nil
}

// ReverseSettlement undoes a settlement. The row is deleted and the invoice
// paid amount, payment status, and party balance are rolled back in one
// transaction, as if the settlement had never been recorded.
func (s *settlementService) ReverseSettlement(ctx context.Context, settlementID string, requestingUserID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	updatedInvoice, err := s.settlementRepo.DeleteSettlement(ctx, settlementID, requestingUserID)
	if err != nil {
		logger.Error("Failed to reverse settlement", slog.String("error", err.Error()), slog.String("settlement_id", settlementID))
		return nil, err
	}

	logger.Info("Settlement reversed", slog.String("settlement_id", settlementID), slog.String("user_id", requestingUserID))
	return updatedInvoice, nil
}

// GetSettlementByID retrieves a specific settlement by its ID.
func (s *settlementService) GetSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	return s.settlementRepo.FindSettlementByID(ctx, settlementID)
}

// ListSettlements retrieves a paginated list of settlements of one type.
func (s *settlementService) ListSettlements(ctx context.Context, settlementType domain.SettlementType, params dto.ListSettlementsParams) (*dto.ListSettlementsResponse, error) {
	listParams := dto.ListParams{Limit: params.Limit, NextToken: params.NextToken}
	filter := portsrepo.ListSettlementsFilter{
		SettlementType: settlementType,
		PartyID:        params.PartyID,
		InvoiceID:      params.InvoiceID,
	}

	settlements, nextToken, err := s.settlementRepo.ListSettlements(ctx, filter, listParams.EffectiveLimit(), params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	responses := make([]dto.SettlementResponse, len(settlements))
	for i := range settlements {
		responses[i] = dto.ToSettlementResponse(&settlements[i], nil)
	}
	return &dto.ListSettlementsResponse{Settlements: responses, NextToken: nextToken}, nil
}
