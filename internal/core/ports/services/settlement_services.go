package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
)

// SettlementReaderSvc defines read operations for settlement data
type SettlementReaderSvc interface {
	// GetSettlementByID retrieves a specific settlement by its ID.
	GetSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)

	// ListSettlements retrieves a paginated list of settlements of one type.
	ListSettlements(ctx context.Context, settlementType domain.SettlementType, params dto.ListSettlementsParams) (*dto.ListSettlementsResponse, error)
}

// SettlementWriterSvc defines settlement application and reversal.
type SettlementWriterSvc interface {
	// RecordSettlement applies a payment against an invoice (or on account),
	// returning the settlement and the updated invoice, if any.
	RecordSettlement(ctx context.Context, settlementType domain.SettlementType, req dto.CreateSettlementRequest, creatorUserID string) (*domain.Settlement, *domain.Invoice, error)

	// ReverseSettlement undoes a settlement, restoring the invoice paid
	// amount, payment status, and party balance. Returns the updated invoice,
	// if the settlement targeted one.
	ReverseSettlement(ctx context.Context, settlementID string, requestingUserID string) (*domain.Invoice, error)
}

// SettlementSvcFacade combines all settlement-related service interfaces
type SettlementSvcFacade interface {
	SettlementReaderSvc
	SettlementWriterSvc
}
