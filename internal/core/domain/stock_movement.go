package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement is one append-only entry in a product's stock ledger. Exactly
// one of QuantityIn/QuantityOut is nonzero. Movements are never updated or
// deleted; corrections are recorded as equal-and-opposite movements.
//
// Seq is assigned by the database at insert time and defines the balance
// computation order for a product: BalanceAfter is always a strict prefix sum
// over ascending Seq. MovementDate may be backdated for reporting and plays
// no part in balance computation.
type StockMovement struct {
	MovementID      string          `json:"movementID"` // Primary Key (UUID)
	Seq             int64           `json:"seq"`
	ProductID       string          `json:"productID"`
	MovementType    InvoiceType     `json:"movementType"` // PURCHASE (in) or SALE (out)
	InvoiceID       string          `json:"invoiceID"`
	ReferenceNumber string          `json:"referenceNumber"` // Invoice number of the originating invoice
	QuantityIn      decimal.Decimal `json:"quantityIn"`
	QuantityOut     decimal.Decimal `json:"quantityOut"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"` // Stock level immediately after this movement
	UnitCost        decimal.Decimal `json:"unitCost"`
	Notes           string          `json:"notes"`
	MovementDate    time.Time       `json:"movementDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// QuantityDelta returns the signed effect of the movement on the stock level.
func (m *StockMovement) QuantityDelta() decimal.Decimal {
	return m.QuantityIn.Sub(m.QuantityOut)
}
