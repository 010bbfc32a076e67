package services

import (
	"context"
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

// partyService provides customer and supplier operations. Both party types
// share the same rules, so one service handles both directions.
type partyService struct {
	partyRepo portsrepo.PartyRepositoryFacade
}

// NewPartyService creates a new PartyService.
func NewPartyService(partyRepo portsrepo.PartyRepositoryFacade) portssvc.PartySvcFacade {
	return &partyService{partyRepo: partyRepo}
}

// Ensure partyService implements the portssvc.PartySvcFacade interface
var _ portssvc.PartySvcFacade = (*partyService)(nil)

// CreateParty persists a new customer or supplier with a zero opening
// balance. Opening balances are recorded as invoices, keeping the balance
// rollup derivable from history.
func (s *partyService) CreateParty(ctx context.Context, partyType domain.PartyType, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	party := domain.Party{
		PartyID:        uuid.NewString(),
		PartyType:      partyType,
		Code:           req.Code,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		CreditLimit:    req.CreditLimit,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		logger.Error("Failed to save party", slog.String("error", err.Error()), slog.String("code", req.Code), slog.String("party_type", string(partyType)))
		return nil, err
	}

	logger.Info("Party created", slog.String("party_id", party.PartyID), slog.String("party_type", string(partyType)))
	return &party, nil
}

// GetPartyByID retrieves a specific party by its ID.
func (s *partyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	return s.partyRepo.FindPartyByID(ctx, partyID)
}

// ListParties retrieves a paginated list of parties of one type.
func (s *partyService) ListParties(ctx context.Context, partyType domain.PartyType, params dto.ListParams) (*dto.ListPartiesResponse, error) {
	parties, nextToken, err := s.partyRepo.ListParties(ctx, partyType, params.EffectiveLimit(), params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return dto.ToListPartiesResponse(parties, nextToken), nil
}

// UpdateParty updates mutable party fields. The balance rollup cannot be
// edited here; it only moves through invoices and settlements.
func (s *partyService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		party.Name = *req.Name
	}
	if req.Email != nil {
		party.Email = *req.Email
	}
	if req.Phone != nil {
		party.Phone = *req.Phone
	}
	if req.Address != nil {
		party.Address = *req.Address
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit must not be negative", apperrors.ErrValidation)
		}
		party.CreditLimit = *req.CreditLimit
	}
	if req.IsActive != nil {
		party.IsActive = *req.IsActive
	}

	party.LastUpdatedAt = time.Now().UTC()
	party.LastUpdatedBy = requestingUserID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		logger.Error("Failed to update party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return nil, err
	}
	return party, nil
}

// DeactivateParty marks a party as inactive.
func (s *partyService) DeactivateParty(ctx context.Context, partyID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.partyRepo.DeactivateParty(ctx, partyID, requestingUserID, time.Now().UTC()); err != nil {
		return err
	}
	logger.Info("Party deactivated", slog.String("party_id", partyID), slog.String("user_id", requestingUserID))
	return nil
}
