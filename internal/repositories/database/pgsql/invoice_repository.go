package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/apperrors"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/inventory_ledger_app/internal/models"
	"github.com/SscSPs/inventory_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/inventory_ledger_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `invoice_id, invoice_type, invoice_number, party_id, transaction_date, due_date, subtotal, tax_amount, discount_amount, total_amount, paid_amount, payment_status, notes, created_at, created_by, last_updated_at, last_updated_by`

const invoiceItemColumns = `item_id, invoice_id, product_id, quantity, unit_price, discount_amount, total_amount`

const stockMovementColumns = `movement_id, seq, product_id, movement_type, invoice_id, reference_number, quantity_in, quantity_out, balance_after, unit_cost, notes, movement_date, created_at, created_by`

type PgxInvoiceRepository struct {
	BaseRepository
	productRepo portsrepo.ProductRepositoryFacade
	partyRepo   portsrepo.PartyRepositoryFacade
}

// newPgxInvoiceRepository creates a new repository for invoice and stock ledger data.
func newPgxInvoiceRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductRepositoryFacade, partyRepo portsrepo.PartyRepositoryFacade) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
		productRepo:    productRepo,
		partyRepo:      partyRepo,
	}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryWithTx
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceType,
		&m.InvoiceNumber,
		&m.PartyID,
		&m.TransactionDate,
		&m.DueDate,
		&m.Subtotal,
		&m.TaxAmount,
		&m.DiscountAmount,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.PaymentStatus,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInvoice persists an invoice header with its items, appends one stock
// movement per item, and updates the product stock and party balance rollups,
// all within a single database transaction.
//
// Product rows are locked in product_id order before any balance is read, so
// concurrent invoices touching overlapping products serialize instead of
// deadlocking. Each movement's balance_after is computed from the locked
// balance; a sale that would drive it negative aborts the whole transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	now := invoice.CreatedAt // Use consistent time from invoice
	userID := invoice.CreatedBy

	// 1. Insert the invoice header
	m := mapping.ToModelInvoice(invoice)
	headerQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.InvoiceID,
		m.InvoiceType,
		m.InvoiceNumber,
		m.PartyID,
		m.TransactionDate,
		m.DueDate,
		m.Subtotal,
		m.TaxAmount,
		m.DiscountAmount,
		m.TotalAmount,
		m.PaidAmount,
		m.PaymentStatus,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s invoice %s already exists", apperrors.ErrDuplicate, m.InvoiceType, m.InvoiceNumber)
		}
		return fmt.Errorf("failed to insert invoice %s: %w", m.InvoiceID, err)
	}

	// 2. Lock the affected product rows and read their current balances
	productIDSet := make(map[string]struct{}, len(items))
	for _, item := range items {
		productIDSet[item.ProductID] = struct{}{}
	}
	productIDs := make([]string, 0, len(productIDSet))
	for id := range productIDSet {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	lockedProducts, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		return fmt.Errorf("failed to lock products for invoice %s: %w", m.InvoiceID, err)
	}

	// 3. Compute the new stock balance after each item and append ledger rows.
	// Items are processed in their given order; balance_after is the strict
	// prefix sum over that order starting from the locked balance.
	runningBalances := make(map[string]decimal.Decimal, len(lockedProducts))
	for id, p := range lockedProducts {
		runningBalances[id] = p.StockQuantity
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	movementQuery := `
		INSERT INTO stock_movements (movement_id, product_id, movement_type, invoice_id, reference_number, quantity_in, quantity_out, balance_after, unit_cost, notes, movement_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, item := range items {
		product, ok := lockedProducts[item.ProductID]
		if !ok {
			return fmt.Errorf("%w: product %s not found during invoice processing", apperrors.ErrNotFound, item.ProductID)
		}

		quantityIn := decimal.Zero
		quantityOut := decimal.Zero
		delta := item.Quantity
		if invoice.InvoiceType == domain.InvoiceTypeSale {
			delta = delta.Neg()
			quantityOut = item.Quantity
		} else {
			quantityIn = item.Quantity
		}

		newBalance := runningBalances[item.ProductID].Add(delta)
		if newBalance.IsNegative() {
			return fmt.Errorf("%w: product %s has %s in stock, cannot sell %s",
				apperrors.ErrInsufficientStock, product.Code, runningBalances[item.ProductID], item.Quantity)
		}
		runningBalances[item.ProductID] = newBalance

		mi := mapping.ToModelInvoiceItem(item)
		batch.Queue(itemQuery,
			mi.ItemID,
			mi.InvoiceID,
			mi.ProductID,
			mi.Quantity,
			mi.UnitPrice,
			mi.DiscountAmount,
			mi.TotalAmount,
		)
		batch.Queue(movementQuery,
			uuid.NewString(),
			item.ProductID,
			m.InvoiceType,
			m.InvoiceID,
			m.InvoiceNumber,
			quantityIn,
			quantityOut,
			newBalance,
			item.UnitPrice,
			m.Notes,
			m.TransactionDate,
			now,
			userID,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert invoice lines for %s: %w", m.InvoiceID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch for invoice %s: %w", m.InvoiceID, err)
	}

	// 4. Write the final stock balance back to each locked product row
	for _, productID := range productIDs {
		if err := r.productRepo.UpdateProductStockInTx(ctx, tx, productID, runningBalances[productID], userID, now); err != nil {
			return err
		}
	}

	// 5. Increase the party's outstanding balance by the invoice total
	if _, err := r.partyRepo.FindPartyByIDForUpdate(ctx, tx, m.PartyID); err != nil {
		return err
	}
	if err := r.partyRepo.AdjustPartyBalanceInTx(ctx, tx, m.PartyID, invoice.TotalAmount, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice header by its surrogate ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

// FindInvoiceByNumber retrieves an invoice by type and business key.
func (r *PgxInvoiceRepository) FindInvoiceByNumber(ctx context.Context, invoiceType domain.InvoiceType, invoiceNumber string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_type = $1 AND invoice_number = $2;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, string(invoiceType), invoiceNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s invoice %s", apperrors.ErrNotFound, invoiceType, invoiceNumber)
		}
		return nil, fmt.Errorf("failed to find invoice by number %s: %w", invoiceNumber, err)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

// FindItemsByInvoiceID retrieves the line items of an invoice.
func (r *PgxInvoiceRepository) FindItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	query := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE invoice_id = $1 ORDER BY item_id;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	items := []domain.InvoiceItem{}
	for rows.Next() {
		var m models.InvoiceItem
		if err := rows.Scan(
			&m.ItemID,
			&m.InvoiceID,
			&m.ProductID,
			&m.Quantity,
			&m.UnitPrice,
			&m.DiscountAmount,
			&m.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item row: %w", err)
		}
		items = append(items, mapping.ToDomainInvoiceItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice item rows: %w", err)
	}
	return items, nil
}

// ListInvoices retrieves a paginated, filtered invoice list.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.ListInvoicesFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_type = $1`
	args := []interface{}{string(filter.InvoiceType)}

	if filter.PartyID != nil {
		query += fmt.Sprintf(` AND party_id = $%d`, len(args)+1)
		args = append(args, *filter.PartyID)
	}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(` AND (created_at, invoice_id) < ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, createdAt, id)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, invoice_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}

	var token *string
	if len(invoices) > limit {
		invoices = invoices[:limit]
		last := invoices[len(invoices)-1]
		t := pagination.EncodeCursor(last.CreatedAt, last.InvoiceID)
		token = &t
	}
	return invoices, token, nil
}

// ListMovementsByProduct retrieves a product's stock ledger entries in
// descending insertion order.
func (r *PgxInvoiceRepository) ListMovementsByProduct(ctx context.Context, productID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []interface{}{productID}

	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSeqCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND seq < $2`
		args = append(args, seq)
	}
	query += fmt.Sprintf(` ORDER BY seq DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list movements for product %s: %w", productID, err)
	}
	defer rows.Close()

	movements := []domain.StockMovement{}
	for rows.Next() {
		var m models.StockMovement
		if err := rows.Scan(
			&m.MovementID,
			&m.Seq,
			&m.ProductID,
			&m.MovementType,
			&m.InvoiceID,
			&m.ReferenceNumber,
			&m.QuantityIn,
			&m.QuantityOut,
			&m.BalanceAfter,
			&m.UnitCost,
			&m.Notes,
			&m.MovementDate,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan stock movement row: %w", err)
		}
		movements = append(movements, mapping.ToDomainStockMovement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating stock movement rows: %w", err)
	}

	var token *string
	if len(movements) > limit {
		movements = movements[:limit]
		t := pagination.EncodeSeqCursor(movements[len(movements)-1].Seq)
		token = &t
	}
	return movements, token, nil
}

// FindInvoiceByIDForUpdate retrieves an invoice and locks the row for update.
// Must be called within a transaction.
func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`
	m, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		return nil, fmt.Errorf("failed to lock invoice %s: %w", invoiceID, err)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

// UpdateInvoicePaymentInTx sets the paid amount and payment status of a
// locked invoice row. These are the only invoice fields that change after insert.
func (r *PgxInvoiceRepository) UpdateInvoicePaymentInTx(ctx context.Context, tx pgx.Tx, invoiceID string, paidAmount decimal.Decimal, status domain.PaymentStatus, userID string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET paid_amount = $2, payment_status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1;
	`
	ct, err := tx.Exec(ctx, query, invoiceID, paidAmount, string(status), updatedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to update payment on invoice %s: %w", invoiceID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s not found during payment update", apperrors.ErrNotFound, invoiceID)
	}
	return nil
}
