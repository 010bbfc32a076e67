package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementType distinguishes payments to suppliers (payable) from payments
// received from customers (receivable). Both reduce the party's outstanding
// balance; only the direction of money differs.
type SettlementType string

const (
	SettlementTypePayable    SettlementType = "PAYABLE"
	SettlementTypeReceivable SettlementType = "RECEIVABLE"
)

// InvoiceType returns the invoice type a settlement of this type applies to.
func (t SettlementType) InvoiceType() InvoiceType {
	if t == SettlementTypePayable {
		return InvoiceTypePurchase
	}
	return InvoiceTypeSale
}

// PartyType returns the party type a settlement of this type is made with.
func (t SettlementType) PartyType() PartyType {
	if t == SettlementTypePayable {
		return PartyTypeSupplier
	}
	return PartyTypeCustomer
}

// PaymentMethod is the instrument used for a settlement.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodCheck        PaymentMethod = "CHECK"
)

// Settlement records a payable or receivable payment. Settlements are created
// once and never mutated; reversal deletes the row and rolls the dependent
// rollups back inside one transaction.
//
// InvoiceID is optional: a settlement without an invoice is an on-account
// payment that adjusts only the party balance.
type Settlement struct {
	SettlementID    string          `json:"settlementID"` // Primary Key (UUID)
	SettlementType  SettlementType  `json:"settlementType"`
	PaymentNumber   string          `json:"paymentNumber"` // Business key, unique per settlement type
	PartyID         string          `json:"partyID"`
	InvoiceID       *string         `json:"invoiceID"`
	PaymentDate     time.Time       `json:"paymentDate"`
	PaymentAmount   decimal.Decimal `json:"paymentAmount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"` // Check number, transfer reference, etc.
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}
