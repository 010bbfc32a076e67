package domain

import "github.com/shopspring/decimal"

// PartyType distinguishes the two trading counterparties. Customers owe us
// (receivables), suppliers are owed by us (payables). The ledger rules are
// structurally identical for both, so they share one type.
type PartyType string

const (
	PartyTypeCustomer PartyType = "CUSTOMER"
	PartyTypeSupplier PartyType = "SUPPLIER"
)

// Party is a customer or supplier. CurrentBalance is a cached rollup: the sum
// of (TotalAmount - PaidAmount) over the party's invoices, adjusted in the
// same transaction as every invoice or settlement write.
type Party struct {
	PartyID        string          `json:"partyID"` // Primary Key (UUID)
	PartyType      PartyType       `json:"partyType"`
	Code           string          `json:"code"` // External-facing business key, unique per party type
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	CreditLimit    decimal.Decimal `json:"creditLimit"` // Meaningful for customers only
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
