package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/SscSPs/inventory_ledger_app/internal/dto"
)

// PartyReaderSvc defines read operations for customer/supplier data
type PartyReaderSvc interface {
	// GetPartyByID retrieves a specific party by its ID.
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves a paginated list of parties of one type.
	ListParties(ctx context.Context, partyType domain.PartyType, params dto.ListParams) (*dto.ListPartiesResponse, error)
}

// PartyWriterSvc defines write operations for party data
type PartyWriterSvc interface {
	// CreateParty persists a new customer or supplier with zero opening balance.
	CreateParty(ctx context.Context, partyType domain.PartyType, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error)

	// UpdateParty updates mutable party fields.
	UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Party, error)

	// DeactivateParty marks a party as inactive.
	DeactivateParty(ctx context.Context, partyID string, requestingUserID string) error
}

// PartySvcFacade combines all party-related service interfaces
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
}
