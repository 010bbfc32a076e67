package domain

import "github.com/shopspring/decimal"

// Product is a stocked item. StockQuantity is a cached rollup: it must always
// equal the sum of (QuantityIn - QuantityOut) over the product's stock
// movements and must never go negative. It is only written inside the same
// transaction that appends the movements deriving it.
type Product struct {
	ProductID     string          `json:"productID"` // Primary Key (UUID)
	Code          string          `json:"code"`      // External-facing business key, unique
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"` // pcs, kg, liter, etc.
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	StockQuantity decimal.Decimal `json:"stockQuantity"` // Cached rollup over stock movements
	MinimumStock  decimal.Decimal `json:"minimumStock"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// IsBelowMinimum reports whether the cached stock level is at or under the
// configured reorder threshold.
func (p *Product) IsBelowMinimum() bool {
	return p.StockQuantity.LessThanOrEqual(p.MinimumStock)
}
