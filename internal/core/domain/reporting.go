package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReportRow is a flattened stock-ledger entry joined with its product.
type StockReportRow struct {
	ProductCode     string          `json:"productCode"`
	ProductName     string          `json:"productName"`
	MovementDate    time.Time       `json:"movementDate"`
	ReferenceNumber string          `json:"referenceNumber"`
	MovementType    InvoiceType     `json:"movementType"`
	QuantityIn      decimal.Decimal `json:"quantityIn"`
	QuantityOut     decimal.Decimal `json:"quantityOut"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	UnitCost        decimal.Decimal `json:"unitCost"`
}

// OutstandingReportRow is a flattened view of an unpaid or partly paid
// invoice joined with its counterparty. PaymentStatus is recomputed against
// the current clock, never read from the stored column.
type OutstandingReportRow struct {
	PartyCode         string          `json:"partyCode"`
	PartyName         string          `json:"partyName"`
	InvoiceNumber     string          `json:"invoiceNumber"`
	TransactionDate   time.Time       `json:"transactionDate"`
	DueDate           *time.Time      `json:"dueDate"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus"`
}
