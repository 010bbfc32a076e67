package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PartyReader defines read operations for customer/supplier data
type PartyReader interface {
	// FindPartyByID retrieves a party by its surrogate ID.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// FindPartyByCode retrieves a party by type and business key.
	FindPartyByCode(ctx context.Context, partyType domain.PartyType, code string) (*domain.Party, error)

	// ListParties retrieves a paginated list of parties of one type.
	ListParties(ctx context.Context, partyType domain.PartyType, limit int, nextToken *string) ([]domain.Party, *string, error)
}

// PartyWriter defines write operations for party data
type PartyWriter interface {
	// SaveParty inserts a new party.
	SaveParty(ctx context.Context, party domain.Party) error

	// UpdateParty updates mutable party fields (never the balance rollup).
	UpdateParty(ctx context.Context, party domain.Party) error

	// DeactivateParty marks a party inactive.
	DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error
}

// PartyLocker defines in-transaction operations on party rows. The balance
// rollup is only ever written through these, under a row lock.
type PartyLocker interface {
	// FindPartyByIDForUpdate locks the party row and returns it.
	// Must be called within a transaction.
	FindPartyByIDForUpdate(ctx context.Context, tx pgx.Tx, partyID string) (*domain.Party, error)

	// AdjustPartyBalanceInTx applies a signed delta to a locked party row's balance.
	AdjustPartyBalanceInTx(ctx context.Context, tx pgx.Tx, partyID string, delta decimal.Decimal, userID string, now time.Time) error
}

// PartyRepositoryFacade combines all party-related repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
	PartyLocker
}
