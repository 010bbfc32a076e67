package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(72 * time.Hour)
	past := now.Add(-72 * time.Hour)

	dec := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		assert.NoError(t, err)
		return d
	}

	tests := []struct {
		name    string
		paid    string
		total   string
		dueDate *time.Time
		want    domain.PaymentStatus
	}{
		{"nothing paid, no due date", "0", "100", nil, domain.PaymentStatusPending},
		{"nothing paid, due in future", "0", "100", &future, domain.PaymentStatusPending},
		{"nothing paid, due date passed", "0", "100", &past, domain.PaymentStatusOverdue},
		{"partly paid, no due date", "40", "100", nil, domain.PaymentStatusPartial},
		{"partly paid, due in future", "40", "100", &future, domain.PaymentStatusPartial},
		{"partly paid, due date passed", "40", "100", &past, domain.PaymentStatusOverdue},
		{"fully paid, no due date", "100", "100", nil, domain.PaymentStatusPaid},
		{"fully paid beats overdue", "100", "100", &past, domain.PaymentStatusPaid},
		{"overpaid clamps to paid", "150", "100", &past, domain.PaymentStatusPaid},
		{"fractional remainder is partial", "99.99", "100", nil, domain.PaymentStatusPartial},
		{"zero total never reads as paid", "0", "0", nil, domain.PaymentStatusPending},
		{"zero total past due is overdue", "0", "0", &past, domain.PaymentStatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DerivePaymentStatus(dec(tt.paid), dec(tt.total), tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerivePaymentStatus_DueDateBoundary(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// An invoice due exactly now is not yet overdue; one second later it is.
	atDue := domain.DerivePaymentStatus(decimal.Zero, decimal.NewFromInt(100), &due, due)
	assert.Equal(t, domain.PaymentStatusPending, atDue)

	afterDue := domain.DerivePaymentStatus(decimal.Zero, decimal.NewFromInt(100), &due, due.Add(time.Second))
	assert.Equal(t, domain.PaymentStatusOverdue, afterDue)
}

func TestInvoiceStatusAt_RederivesWithoutWrite(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := domain.Invoice{
		TotalAmount:   decimal.NewFromInt(500),
		PaidAmount:    decimal.NewFromInt(200),
		DueDate:       &due,
		PaymentStatus: domain.PaymentStatusPartial, // stale stored value
	}

	assert.Equal(t, domain.PaymentStatusPartial, inv.StatusAt(due.Add(-24*time.Hour)))
	assert.Equal(t, domain.PaymentStatusOverdue, inv.StatusAt(due.Add(24*time.Hour)))
	// The stored field is untouched by derivation.
	assert.Equal(t, domain.PaymentStatusPartial, inv.PaymentStatus)
}

func TestInvoiceOutstanding(t *testing.T) {
	inv := domain.Invoice{
		TotalAmount: decimal.RequireFromString("123.45"),
		PaidAmount:  decimal.RequireFromString("23.45"),
	}
	assert.True(t, inv.Outstanding().Equal(decimal.NewFromInt(100)))
}

func TestInvoiceTypeCounterpartyType(t *testing.T) {
	assert.Equal(t, domain.PartyTypeSupplier, domain.InvoiceTypePurchase.CounterpartyType())
	assert.Equal(t, domain.PartyTypeCustomer, domain.InvoiceTypeSale.CounterpartyType())
}
