package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/inventory_ledger_app/internal/models"
	"github.com/SscSPs/inventory_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/inventory_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const productColumns = `product_id, code, name, description, unit, purchase_price, selling_price, stock_quantity, minimum_stock, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Code,
		&m.Name,
		&m.Description,
		&m.Unit,
		&m.PurchasePrice,
		&m.SellingPrice,
		&m.StockQuantity,
		&m.MinimumStock,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Code,
		m.Name,
		m.Description,
		m.Unit,
		m.PurchasePrice,
		m.SellingPrice,
		m.StockQuantity,
		m.MinimumStock,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save product %s: %w", m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its surrogate ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	d := mapping.ToDomainProduct(m)
	return &d, nil
}

// FindProductByCode retrieves a product by its business key.
func (r *PgxProductRepository) FindProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product with code %s", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find product by code %s: %w", code, err)
	}
	d := mapping.ToDomainProduct(m)
	return &d, nil
}

// FindProductsByIDs retrieves multiple products keyed by ID.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	products := make(map[string]domain.Product)
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products[m.ProductID] = mapping.ToDomainProduct(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// ListProducts retrieves a paginated list of products using token-based pagination.
func (r *PgxProductRepository) ListProducts(ctx context.Context, limit int, nextToken *string) ([]domain.Product, *string, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` WHERE (created_at, product_id) < ($1, $2)`
		args = append(args, createdAt, id)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, product_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // Fetch one extra row to detect the next page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, mapping.ToDomainProduct(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	var token *string
	if len(products) > limit {
		products = products[:limit]
		last := products[len(products)-1]
		t := pagination.EncodeCursor(last.CreatedAt, last.ProductID)
		token = &t
	}
	return products, token, nil
}

// ListProductsBelowMinimum retrieves active products at or under their minimum stock.
func (r *PgxProductRepository) ListProductsBelowMinimum(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active AND stock_quantity <= minimum_stock ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list low-stock products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, mapping.ToDomainProduct(m))
	}
	return products, rows.Err()
}

// UpdateProduct updates mutable product fields. The stock rollup is
// deliberately excluded; it only changes via UpdateProductStockInTx.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET name = $2, description = $3, unit = $4, purchase_price = $5, selling_price = $6, minimum_stock = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE product_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Description,
		m.Unit,
		m.PurchasePrice,
		m.SellingPrice,
		m.MinimumStock,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", m.ProductID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, m.ProductID)
	}
	return nil
}

// DeactivateProduct marks a product inactive.
func (r *PgxProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	query := `UPDATE products SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3 WHERE product_id = $1;`
	ct, err := r.Pool.Exec(ctx, query, productID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate product %s: %w", productID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
	}
	return nil
}

// FindProductsByIDsForUpdate retrieves multiple products by IDs and locks the
// rows for update. Must be called within a transaction. IDs are sorted by the
// query so concurrent callers acquire locks in the same order.
func (r *PgxProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = ANY($1)
		ORDER BY product_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs for update: %w", err)
	}
	defer rows.Close()

	products := make(map[string]domain.Product)
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked product row: %w", err)
		}
		products[m.ProductID] = mapping.ToDomainProduct(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked product rows: %w", err)
	}

	for _, id := range productIDs {
		if _, found := products[id]; !found {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
		}
	}
	return products, nil
}

// UpdateProductStockInTx sets the cached stock quantity of a locked product row.
func (r *PgxProductRepository) UpdateProductStockInTx(ctx context.Context, tx pgx.Tx, productID string, quantity decimal.Decimal, userID string, now time.Time) error {
	query := `UPDATE products SET stock_quantity = $2, last_updated_at = $3, last_updated_by = $4 WHERE product_id = $1;`
	ct, err := tx.Exec(ctx, query, productID, quantity, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update stock for product %s: %w", productID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s not found during stock update", apperrors.ErrNotFound, productID)
	}
	return nil
}
