package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType mirrors domain.InvoiceType at the persistence layer.
type InvoiceType string

const (
	Purchase InvoiceType = "PURCHASE"
	Sale     InvoiceType = "SALE"
)

// PaymentStatus mirrors domain.PaymentStatus at the persistence layer.
type PaymentStatus string

const (
	Pending PaymentStatus = "PENDING"
	Partial PaymentStatus = "PARTIAL"
	Paid    PaymentStatus = "PAID"
	Overdue PaymentStatus = "OVERDUE"
)

// Invoice is the DB shape of a purchase or sale header. Only paid_amount and
// payment_status change after insert.
type Invoice struct {
	InvoiceID       string          `db:"invoice_id"`
	InvoiceType     InvoiceType     `db:"invoice_type"`
	InvoiceNumber   string          `db:"invoice_number"`
	PartyID         string          `db:"party_id"`
	TransactionDate time.Time       `db:"transaction_date"`
	DueDate         *time.Time      `db:"due_date"`
	Subtotal        decimal.Decimal `db:"subtotal"`
	TaxAmount       decimal.Decimal `db:"tax_amount"`
	DiscountAmount  decimal.Decimal `db:"discount_amount"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	PaidAmount      decimal.Decimal `db:"paid_amount"`
	PaymentStatus   PaymentStatus   `db:"payment_status"`
	Notes           string          `db:"notes"`
	AuditFields
}

// InvoiceItem is the DB shape of one invoice line.
type InvoiceItem struct {
	ItemID         string          `db:"item_id"`
	InvoiceID      string          `db:"invoice_id"`
	ProductID      string          `db:"product_id"`
	Quantity       decimal.Decimal `db:"quantity"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
}
