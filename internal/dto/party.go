package dto

import (
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest defines the data needed to create a customer or supplier.
// The party type comes from the route, not the body.
type CreatePartyRequest struct {
	Code        string          `json:"code" binding:"required,max=50"`
	Name        string          `json:"name" binding:"required,max=200"`
	Email       string          `json:"email" binding:"omitempty,email,max=255"`
	Phone       string          `json:"phone" binding:"max=20"`
	Address     string          `json:"address" binding:"max=500"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
}

// UpdatePartyRequest defines the data allowed for updating a party.
type UpdatePartyRequest struct {
	Name        *string          `json:"name"`
	Email       *string          `json:"email"`
	Phone       *string          `json:"phone"`
	Address     *string          `json:"address"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
	IsActive    *bool            `json:"isActive"`
}

// PartyResponse defines the data returned for a customer or supplier.
type PartyResponse struct {
	PartyID        string           `json:"partyID"`
	PartyType      domain.PartyType `json:"partyType"`
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Address        string           `json:"address"`
	CreditLimit    decimal.Decimal  `json:"creditLimit"`
	CurrentBalance decimal.Decimal  `json:"currentBalance"`
	IsActive       bool             `json:"isActive"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
	LastUpdatedAt  time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy  string           `json:"lastUpdatedBy"`
}

// ListPartiesResponse carries one page of parties.
type ListPartiesResponse struct {
	Parties   []PartyResponse `json:"parties"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToPartyResponse converts a domain.Party to PartyResponse DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:        p.PartyID,
		PartyType:      p.PartyType,
		Code:           p.Code,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		CreditLimit:    p.CreditLimit,
		CurrentBalance: p.CurrentBalance,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
		LastUpdatedAt:  p.LastUpdatedAt,
		LastUpdatedBy:  p.LastUpdatedBy,
	}
}

// ToListPartiesResponse converts a page of domain parties to the response DTO.
func ToListPartiesResponse(parties []domain.Party, nextToken *string) *ListPartiesResponse {
	res := make([]PartyResponse, len(parties))
	for i, p := range parties {
		res[i] = ToPartyResponse(&p)
	}
	return &ListPartiesResponse{Parties: res, NextToken: nextToken}
}
