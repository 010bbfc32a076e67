package mapping

import (
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/SscSPs/inventory_ledger_app/internal/models"
)

// ToModelParty converts a domain Party to its DB model.
func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:        d.PartyID,
		PartyType:      models.PartyType(d.PartyType),
		Code:           d.Code,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		Address:        d.Address,
		CreditLimit:    d.CreditLimit,
		CurrentBalance: d.CurrentBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParty converts a DB model Party to its domain shape.
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:        m.PartyID,
		PartyType:      domain.PartyType(m.PartyType),
		Code:           m.Code,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		Address:        m.Address,
		CreditLimit:    m.CreditLimit,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
