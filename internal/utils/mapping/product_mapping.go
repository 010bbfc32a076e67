package mapping

import (
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/SscSPs/inventory_ledger_app/internal/models"
)

// ToModelProduct converts a domain Product to its DB model.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:     d.ProductID,
		Code:          d.Code,
		Name:          d.Name,
		Description:   d.Description,
		Unit:          d.Unit,
		PurchasePrice: d.PurchasePrice,
		SellingPrice:  d.SellingPrice,
		StockQuantity: d.StockQuantity,
		MinimumStock:  d.MinimumStock,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a DB model Product to its domain shape.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:     m.ProductID,
		Code:          m.Code,
		Name:          m.Name,
		Description:   m.Description,
		Unit:          m.Unit,
		PurchasePrice: m.PurchasePrice,
		SellingPrice:  m.SellingPrice,
		StockQuantity: m.StockQuantity,
		MinimumStock:  m.MinimumStock,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
