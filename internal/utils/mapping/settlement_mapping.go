package mapping

import (
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/SscSPs/inventory_ledger_app/internal/models"
)

// ToModelSettlement converts a domain Settlement to its DB model.
func ToModelSettlement(d domain.Settlement) models.Settlement {
	return models.Settlement{
		SettlementID:    d.SettlementID,
		SettlementType:  models.SettlementType(d.SettlementType),
		PaymentNumber:   d.PaymentNumber,
		PartyID:         d.PartyID,
		InvoiceID:       d.InvoiceID,
		PaymentDate:     d.PaymentDate,
		PaymentAmount:   d.PaymentAmount,
		PaymentMethod:   string(d.PaymentMethod),
		ReferenceNumber: d.ReferenceNumber,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainSettlement converts a DB model Settlement to its domain shape.
func ToDomainSettlement(m models.Settlement) domain.Settlement {
	return domain.Settlement{
		SettlementID:    m.SettlementID,
		SettlementType:  domain.SettlementType(m.SettlementType),
		PaymentNumber:   m.PaymentNumber,
		PartyID:         m.PartyID,
		InvoiceID:       m.InvoiceID,
		PaymentDate:     m.PaymentDate,
		PaymentAmount:   m.PaymentAmount,
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
