package dto

import (
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceItemRequest is one line of an invoice creation request. The
// caller supplies the line total; the service verifies the arithmetic rather
// than recomputing it silently.
type CreateInvoiceItemRequest struct {
	ProductID      string          `json:"productID" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

// CreateInvoiceRequest defines the data needed to record a purchase or sale.
// The invoice type comes from the route, not the body.
type CreateInvoiceRequest struct {
	InvoiceNumber   string                     `json:"invoiceNumber" binding:"required,max=100"`
	PartyID         string                     `json:"partyID" binding:"required"`
	TransactionDate time.Time                  `json:"transactionDate" binding:"required"`
	DueDate         *time.Time                 `json:"dueDate"`
	Subtotal        decimal.Decimal            `json:"subtotal"`
	TaxAmount       decimal.Decimal            `json:"taxAmount"`
	DiscountAmount  decimal.Decimal            `json:"discountAmount"`
	TotalAmount     decimal.Decimal            `json:"totalAmount"`
	Notes           string                     `json:"notes" binding:"max=1000"`
	Items           []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// InvoiceItemResponse defines the data returned for an invoice line.
type InvoiceItemResponse struct {
	ItemID         string          `json:"itemID"`
	ProductID      string          `json:"productID"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID       string                `json:"invoiceID"`
	InvoiceType     domain.InvoiceType    `json:"invoiceType"`
	InvoiceNumber   string                `json:"invoiceNumber"`
	PartyID         string                `json:"partyID"`
	TransactionDate time.Time             `json:"transactionDate"`
	DueDate         *time.Time            `json:"dueDate,omitempty"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	TaxAmount       decimal.Decimal       `json:"taxAmount"`
	DiscountAmount  decimal.Decimal       `json:"discountAmount"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	PaidAmount      decimal.Decimal       `json:"paidAmount"`
	PaymentStatus   domain.PaymentStatus  `json:"paymentStatus"`
	Notes           string                `json:"notes"`
	Items           []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ListInvoicesParams holds filters for listing invoices.
type ListInvoicesParams struct {
	PartyID   *string `form:"partyID"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListInvoicesResponse carries one page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// MovementResponse defines the data returned for a stock movement.
type MovementResponse struct {
	MovementID      string             `json:"movementID"`
	ProductID       string             `json:"productID"`
	MovementType    domain.InvoiceType `json:"movementType"`
	ReferenceNumber string             `json:"referenceNumber"`
	QuantityIn      decimal.Decimal    `json:"quantityIn"`
	QuantityOut     decimal.Decimal    `json:"quantityOut"`
	BalanceAfter    decimal.Decimal    `json:"balanceAfter"`
	UnitCost        decimal.Decimal    `json:"unitCost"`
	MovementDate    time.Time          `json:"movementDate"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// ListMovementsResponse carries one page of stock movements.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToInvoiceItemResponse converts a domain.InvoiceItem to its response DTO.
func ToInvoiceItemResponse(it *domain.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ItemID:         it.ItemID,
		ProductID:      it.ProductID,
		Quantity:       it.Quantity,
		UnitPrice:      it.UnitPrice,
		DiscountAmount: it.DiscountAmount,
		TotalAmount:    it.TotalAmount,
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = ToInvoiceItemResponse(&it)
	}
	return InvoiceResponse{
		InvoiceID:       inv.InvoiceID,
		InvoiceType:     inv.InvoiceType,
		InvoiceNumber:   inv.InvoiceNumber,
		PartyID:         inv.PartyID,
		TransactionDate: inv.TransactionDate,
		DueDate:         inv.DueDate,
		Subtotal:        inv.Subtotal,
		TaxAmount:       inv.TaxAmount,
		DiscountAmount:  inv.DiscountAmount,
		TotalAmount:     inv.TotalAmount,
		PaidAmount:      inv.PaidAmount,
		PaymentStatus:   inv.PaymentStatus,
		Notes:           inv.Notes,
		Items:           items,
		CreatedAt:       inv.CreatedAt,
		CreatedBy:       inv.CreatedBy,
	}
}

// ToMovementResponse converts a domain.StockMovement to MovementResponse DTO.
func ToMovementResponse(m *domain.StockMovement) MovementResponse {
	return MovementResponse{
		MovementID:      m.MovementID,
		ProductID:       m.ProductID,
		MovementType:    m.MovementType,
		ReferenceNumber: m.ReferenceNumber,
		QuantityIn:      m.QuantityIn,
		QuantityOut:     m.QuantityOut,
		BalanceAfter:    m.BalanceAfter,
		UnitCost:        m.UnitCost,
		MovementDate:    m.MovementDate,
		CreatedAt:       m.CreatedAt,
	}
}
