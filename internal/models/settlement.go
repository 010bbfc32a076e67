package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementType mirrors domain.SettlementType at the persistence layer.
type SettlementType string

const (
	Payable    SettlementType = "PAYABLE"
	Receivable SettlementType = "RECEIVABLE"
)

// Settlement is the DB shape of a payable or receivable payment. Rows are
// inserted once and deleted on reversal, never updated.
type Settlement struct {
	SettlementID    string          `db:"settlement_id"`
	SettlementType  SettlementType  `db:"settlement_type"`
	PaymentNumber   string          `db:"payment_number"`
	PartyID         string          `db:"party_id"`
	InvoiceID       *string         `db:"invoice_id"`
	PaymentDate     time.Time       `db:"payment_date"`
	PaymentAmount   decimal.Decimal `db:"payment_amount"`
	PaymentMethod   string          `db:"payment_method"`
	ReferenceNumber string          `db:"reference_number"`
	Notes           string          `db:"notes"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}
