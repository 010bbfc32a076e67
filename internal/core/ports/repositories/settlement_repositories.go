package repositories

import (
	"context"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
)

// ListSettlementsFilter narrows settlement listings.
type ListSettlementsFilter struct {
	SettlementType domain.SettlementType
	PartyID        *string
	InvoiceID      *string
}

// SettlementReader defines read operations for settlement data
type SettlementReader interface {
	// FindSettlementByID retrieves a settlement by its surrogate ID.
	FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)

	// ListSettlements retrieves a paginated, filtered settlement list.
	ListSettlements(ctx context.Context, filter ListSettlementsFilter, limit int, nextToken *string) ([]domain.Settlement, *string, error)
}

// SettlementWriter defines the atomic write operations for settlements.
type SettlementWriter interface {
	// SaveSettlement inserts the settlement and, when it targets an invoice,
	// locks the invoice and party rows, rejects overpayment with
	// apperrors.ErrOverpayment, bumps the invoice's paid amount, re-derives
	// its payment status, and reduces the party balance - all in one database
	// transaction. It returns the updated invoice (nil for on-account
	// settlements).
	SaveSettlement(ctx context.Context, settlement domain.Settlement) (*domain.Invoice, error)

	// DeleteSettlement reverses a settlement: deletes the row and rolls the
	// invoice paid amount, payment status, and party balance back in one
	// database transaction. It returns the updated invoice, if any.
	DeleteSettlement(ctx context.Context, settlementID string, userID string) (*domain.Invoice, error)
}

// SettlementRepositoryFacade combines all settlement-related repository interfaces
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}

// SettlementRepositoryWithTx extends SettlementRepositoryFacade with transaction capabilities
type SettlementRepositoryWithTx interface {
	SettlementRepositoryFacade
	TransactionManager
}
