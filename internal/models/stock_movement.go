package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement is the DB shape of one append-only stock-ledger entry.
// seq is a bigserial: it fixes the balance computation order independently of
// the (backdatable) movement_date. Rows are never updated or deleted.
type StockMovement struct {
	MovementID      string          `db:"movement_id"`
	Seq             int64           `db:"seq"`
	ProductID       string          `db:"product_id"`
	MovementType    InvoiceType     `db:"movement_type"`
	InvoiceID       string          `db:"invoice_id"`
	ReferenceNumber string          `db:"reference_number"`
	QuantityIn      decimal.Decimal `db:"quantity_in"`
	QuantityOut     decimal.Decimal `db:"quantity_out"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	UnitCost        decimal.Decimal `db:"unit_cost"`
	Notes           string          `db:"notes"`
	MovementDate    time.Time       `db:"movement_date"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}
