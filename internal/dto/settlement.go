package dto

import (
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSettlementRequest defines the data needed to record a payment.
// The settlement type comes from the route, not the body.
type CreateSettlementRequest struct {
	PaymentNumber   string               `json:"paymentNumber" binding:"required,max=100"`
	PartyID         string               `json:"partyID" binding:"required"`
	InvoiceID       *string              `json:"invoiceID"`
	PaymentDate     time.Time            `json:"paymentDate" binding:"required"`
	PaymentAmount   decimal.Decimal      `json:"paymentAmount" binding:"required"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=CASH BANK_TRANSFER CREDIT_CARD CHECK"`
	ReferenceNumber string               `json:"referenceNumber" binding:"max=100"`
	Notes           string               `json:"notes" binding:"max=500"`
}

// SettlementResponse defines the data returned for a settlement. Invoice is
// populated when the settlement was applied against one, reflecting the
// post-application paid amount and status.
type SettlementResponse struct {
	SettlementID    string                `json:"settlementID"`
	SettlementType  domain.SettlementType `json:"settlementType"`
	PaymentNumber   string                `json:"paymentNumber"`
	PartyID         string                `json:"partyID"`
	InvoiceID       *string               `json:"invoiceID,omitempty"`
	PaymentDate     time.Time             `json:"paymentDate"`
	PaymentAmount   decimal.Decimal       `json:"paymentAmount"`
	PaymentMethod   domain.PaymentMethod  `json:"paymentMethod"`
	ReferenceNumber string                `json:"referenceNumber"`
	Notes           string                `json:"notes"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	Invoice         *InvoiceResponse      `json:"invoice,omitempty"`
}

// ListSettlementsParams holds filters for listing settlements.
type ListSettlementsParams struct {
	PartyID   *string `form:"partyID"`
	InvoiceID *string `form:"invoiceID"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListSettlementsResponse carries one page of settlements.
type ListSettlementsResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToSettlementResponse converts a domain.Settlement (and the invoice it
// updated, if any) to SettlementResponse DTO.
func ToSettlementResponse(s *domain.Settlement, invoice *domain.Invoice) SettlementResponse {
	resp := SettlementResponse{
		SettlementID:    s.SettlementID,
		SettlementType:  s.SettlementType,
		PaymentNumber:   s.PaymentNumber,
		PartyID:         s.PartyID,
		InvoiceID:       s.InvoiceID,
		PaymentDate:     s.PaymentDate,
		PaymentAmount:   s.PaymentAmount,
		PaymentMethod:   s.PaymentMethod,
		ReferenceNumber: s.ReferenceNumber,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		CreatedBy:       s.CreatedBy,
	}
	if invoice != nil {
		inv := ToInvoiceResponse(invoice)
		resp.Invoice = &inv
	}
	return resp
}
