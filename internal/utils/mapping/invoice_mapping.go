package mapping

import (
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/SscSPs/inventory_ledger_app/internal/models"
)

// ToModelInvoice converts a domain Invoice header to its DB model.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:       d.InvoiceID,
		InvoiceType:     models.InvoiceType(d.InvoiceType),
		InvoiceNumber:   d.InvoiceNumber,
		PartyID:         d.PartyID,
		TransactionDate: d.TransactionDate,
		DueDate:         d.DueDate,
		Subtotal:        d.Subtotal,
		TaxAmount:       d.TaxAmount,
		DiscountAmount:  d.DiscountAmount,
		TotalAmount:     d.TotalAmount,
		PaidAmount:      d.PaidAmount,
		PaymentStatus:   models.PaymentStatus(d.PaymentStatus),
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a DB model Invoice to its domain shape. Items are
// loaded separately.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:       m.InvoiceID,
		InvoiceType:     domain.InvoiceType(m.InvoiceType),
		InvoiceNumber:   m.InvoiceNumber,
		PartyID:         m.PartyID,
		TransactionDate: m.TransactionDate,
		DueDate:         m.DueDate,
		Subtotal:        m.Subtotal,
		TaxAmount:       m.TaxAmount,
		DiscountAmount:  m.DiscountAmount,
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceItem converts a domain InvoiceItem to its DB model.
func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ItemID:         d.ItemID,
		InvoiceID:      d.InvoiceID,
		ProductID:      d.ProductID,
		Quantity:       d.Quantity,
		UnitPrice:      d.UnitPrice,
		DiscountAmount: d.DiscountAmount,
		TotalAmount:    d.TotalAmount,
	}
}

// ToDomainInvoiceItem converts a DB model InvoiceItem to its domain shape.
func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ItemID:         m.ItemID,
		InvoiceID:      m.InvoiceID,
		ProductID:      m.ProductID,
		Quantity:       m.Quantity,
		UnitPrice:      m.UnitPrice,
		DiscountAmount: m.DiscountAmount,
		TotalAmount:    m.TotalAmount,
	}
}

// ToDomainStockMovement converts a DB model StockMovement to its domain shape.
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID:      m.MovementID,
		Seq:             m.Seq,
		ProductID:       m.ProductID,
		MovementType:    domain.InvoiceType(m.MovementType),
		InvoiceID:       m.InvoiceID,
		ReferenceNumber: m.ReferenceNumber,
		QuantityIn:      m.QuantityIn,
		QuantityOut:     m.QuantityOut,
		BalanceAfter:    m.BalanceAfter,
		UnitCost:        m.UnitCost,
		Notes:           m.Notes,
		MovementDate:    m.MovementDate,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
