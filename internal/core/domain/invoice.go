package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes a purchase (from a supplier, stock in) from a
// sale (to a customer, stock out).
type InvoiceType string

const (
	InvoiceTypePurchase InvoiceType = "PURCHASE"
	InvoiceTypeSale     InvoiceType = "SALE"
)

// CounterpartyType returns the party type an invoice of this type trades with.
func (t InvoiceType) CounterpartyType() PartyType {
	if t == InvoiceTypePurchase {
		return PartyTypeSupplier
	}
	return PartyTypeCustomer
}

// PaymentStatus is the settlement state of an invoice. OVERDUE is a
// time-dependent refinement of PENDING/PARTIAL, re-derived at read time;
// PAID is terminal and never overridden by OVERDUE.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
)

// Invoice is a purchase or sale. After creation only PaidAmount and
// PaymentStatus change, and only through settlement application or reversal;
// corrections are modelled as new compensating transactions.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"` // Primary Key (UUID)
	InvoiceType     InvoiceType     `json:"invoiceType"`
	InvoiceNumber   string          `json:"invoiceNumber"` // Business key, unique per invoice type
	PartyID         string          `json:"partyID"`       // Supplier for purchases, customer for sales
	TransactionDate time.Time       `json:"transactionDate"`
	DueDate         *time.Time      `json:"dueDate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"` // subtotal + tax - discount
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"` // Stored; re-derive with StatusAt for reads
	Notes           string          `json:"notes"`
	Items           []InvoiceItem   `json:"items,omitempty"`
	AuditFields
}

// InvoiceItem is one line of an invoice. TotalAmount must equal
// Quantity*UnitPrice - DiscountAmount exactly.
type InvoiceItem struct {
	ItemID         string          `json:"itemID"` // Primary Key (UUID)
	InvoiceID      string          `json:"invoiceID"`
	ProductID      string          `json:"productID"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"` // quantity*unitPrice - discountAmount
}

// Outstanding returns the unpaid remainder of the invoice.
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// StatusAt re-derives the payment status against the given clock. This is the
// single authoritative derivation; the stored PaymentStatus is a cache of its
// result at the last write.
func (i *Invoice) StatusAt(now time.Time) PaymentStatus {
	return DerivePaymentStatus(i.PaidAmount, i.TotalAmount, i.DueDate, now)
}

// DerivePaymentStatus computes the payment status as a pure function of the
// paid amount, total amount, due date, and clock.
func DerivePaymentStatus(paid, total decimal.Decimal, dueDate *time.Time, now time.Time) PaymentStatus {
	// PAID is terminal: a zero-total invoice with nothing paid still counts
	// as pending rather than paid.
	if total.GreaterThan(decimal.Zero) && paid.GreaterThanOrEqual(total) {
		return PaymentStatusPaid
	}
	overdue := dueDate != nil && dueDate.Before(now)
	if paid.IsZero() {
		if overdue {
			return PaymentStatusOverdue
		}
		return PaymentStatusPending
	}
	if overdue {
		return PaymentStatusOverdue
	}
	return PaymentStatusPartial
}
