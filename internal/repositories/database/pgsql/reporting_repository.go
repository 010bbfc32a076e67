package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for read models and
// rollup recomputation.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// StockReport returns stock-ledger rows joined with product data, filtered by
// product and movement-date range, in ledger order.
func (r *PgxReportingRepository) StockReport(ctx context.Context, productID *string, from, to *time.Time) ([]domain.StockReportRow, error) {
	query := `
		SELECT p.code, p.name, sm.movement_date, sm.reference_number, sm.movement_type, sm.quantity_in, sm.quantity_out, sm.balance_after, sm.unit_cost
		FROM stock_movements sm
		JOIN products p ON p.product_id = sm.product_id
		WHERE 1=1`
	args := []interface{}{}

	if productID != nil {
		query += fmt.Sprintf(` AND sm.product_id = $%d`, len(args)+1)
		args = append(args, *productID)
	}
	if from != nil {
		query += fmt.Sprintf(` AND sm.movement_date >= $%d`, len(args)+1)
		args = append(args, *from)
	}
	if to != nil {
		query += fmt.Sprintf(` AND sm.movement_date <= $%d`, len(args)+1)
		args = append(args, *to)
	}
	query += ` ORDER BY p.code, sm.seq;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock report: %w", err)
	}
	defer rows.Close()

	report := []domain.StockReportRow{}
	for rows.Next() {
		var row domain.StockReportRow
		if err := rows.Scan(
			&row.ProductCode,
			&row.ProductName,
			&row.MovementDate,
			&row.ReferenceNumber,
			&row.MovementType,
			&row.QuantityIn,
			&row.QuantityOut,
			&row.BalanceAfter,
			&row.UnitCost,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock report row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock report rows: %w", err)
	}
	return report, nil
}

// OutstandingReport returns invoices of the given type with an unpaid
// remainder, joined with their counterparty. The stored payment_status is not
// selected; the service re-derives it against the current clock.
func (r *PgxReportingRepository) OutstandingReport(ctx context.Context, invoiceType domain.InvoiceType, partyID *string) ([]domain.OutstandingReportRow, error) {
	query := `
		SELECT pt.code, pt.name, i.invoice_number, i.transaction_date, i.due_date, i.total_amount, i.paid_amount
		FROM invoices i
		JOIN parties pt ON pt.party_id = i.party_id
		WHERE i.invoice_type = $1 AND i.paid_amount < i.total_amount`
	args := []interface{}{string(invoiceType)}

	if partyID != nil {
		query += fmt.Sprintf(` AND i.party_id = $%d`, len(args)+1)
		args = append(args, *partyID)
	}
	query += ` ORDER BY i.transaction_date, i.invoice_number;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query outstanding report: %w", err)
	}
	defer rows.Close()

	report := []domain.OutstandingReportRow{}
	for rows.Next() {
		var row domain.OutstandingReportRow
		if err := rows.Scan(
			&row.PartyCode,
			&row.PartyName,
			&row.InvoiceNumber,
			&row.TransactionDate,
			&row.DueDate,
			&row.TotalAmount,
			&row.PaidAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan outstanding report row: %w", err)
		}
		row.OutstandingAmount = row.TotalAmount.Sub(row.PaidAmount)
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outstanding report rows: %w", err)
	}
	return report, nil
}

// RecomputeProductStock sums quantity_in - quantity_out over a product's
// movements, bypassing the cached rollup on the product row.
func (r *PgxReportingRepository) RecomputeProductStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity_in - quantity_out), 0) FROM stock_movements WHERE product_id = $1;`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to recompute stock for product %s: %w", productID, err)
	}
	return total, nil
}

// RecomputePartyBalance sums total_amount - paid_amount over a party's
// invoices and subtracts its on-account settlements, bypassing the cached
// rollup on the party row.
func (r *PgxReportingRepository) RecomputePartyBalance(ctx context.Context, partyID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE((SELECT SUM(total_amount - paid_amount) FROM invoices WHERE party_id = $1), 0)
		     - COALESCE((SELECT SUM(payment_amount) FROM settlements WHERE party_id = $1 AND invoice_id IS NULL), 0);
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, partyID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to recompute balance for party %s: %w", partyID, err)
	}
	return total, nil
}
