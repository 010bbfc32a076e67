package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a product by its surrogate ID.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductByCode retrieves a product by its business key.
	FindProductByCode(ctx context.Context, code string) (*domain.Product, error)

	// FindProductsByIDs retrieves multiple products keyed by ID.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListProducts retrieves a paginated list of products using token-based pagination.
	ListProducts(ctx context.Context, limit int, nextToken *string) ([]domain.Product, *string, error)

	// ListProductsBelowMinimum retrieves active products at or under their minimum stock.
	ListProductsBelowMinimum(ctx context.Context) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct inserts a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates mutable product fields (never the stock rollup).
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeactivateProduct marks a product inactive.
	DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error
}

// ProductLocker defines in-transaction operations on product rows. The stock
// rollup is only ever written through these, under a row lock.
type ProductLocker interface {
	// FindProductsByIDsForUpdate locks the product rows and returns them.
	// Must be called within a transaction.
	FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error)

	// UpdateProductStockInTx sets the cached stock quantity of a locked product row.
	UpdateProductStockInTx(ctx context.Context, tx pgx.Tx, productID string, quantity decimal.Decimal, userID string, now time.Time) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductLocker
}
