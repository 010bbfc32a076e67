package models

import "github.com/shopspring/decimal"

// Product is the DB shape of a stocked item. stock_quantity is the cached
// rollup column, written only under a row lock inside invoice transactions.
type Product struct {
	ProductID     string          `db:"product_id"`
	Code          string          `db:"code"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	Unit          string          `db:"unit"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	SellingPrice  decimal.Decimal `db:"selling_price"`
	StockQuantity decimal.Decimal `db:"stock_quantity"`
	MinimumStock  decimal.Decimal `db:"minimum_stock"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
