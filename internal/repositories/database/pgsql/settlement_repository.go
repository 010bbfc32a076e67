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
)

const settlementColumns = `settlement_id, settlement_type, payment_number, party_id, invoice_id, payment_date, payment_amount, payment_method, reference_number, notes, created_at, created_by`

type PgxSettlementRepository struct {
	BaseRepository
	invoiceRepo portsrepo.InvoiceLocker
	partyRepo   portsrepo.PartyRepositoryFacade
}

// newPgxSettlementRepository creates a new repository for settlement data.
func newPgxSettlementRepository(pool *pgxpool.Pool, invoiceRepo portsrepo.InvoiceLocker, partyRepo portsrepo.PartyRepositoryFacade) portsrepo.SettlementRepositoryWithTx {
	return &PgxSettlementRepository{
		BaseRepository: BaseRepository{Pool: pool},
		invoiceRepo:    invoiceRepo,
		partyRepo:      partyRepo,
	}
}

// Ensure PgxSettlementRepository implements portsrepo.SettlementRepositoryWithTx
var _ portsrepo.SettlementRepositoryWithTx = (*PgxSettlementRepository)(nil)

func scanSettlement(row pgx.Row) (models.Settlement, error) {
	var m models.Settlement
	err := row.Scan(
		&m.SettlementID,
		&m.SettlementType,
		&m.PaymentNumber,
		&m.PartyID,
		&m.InvoiceID,
		&m.PaymentDate,
		&m.PaymentAmount,
		&m.PaymentMethod,
		&m.ReferenceNumber,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// SaveSettlement inserts the settlement and reconciles its invoice and party
// within one database transaction.
//
// When the settlement targets an invoice, the invoice row is locked before
// the overpayment check so that two concurrent settlements against the same
// invoice serialize and the second one sees the first one's paid amount. The
// party balance decreases by the payment amount in the same transaction.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	now := settlement.CreatedAt // Use consistent time from settlement
	userID := settlement.CreatedBy

	// 1. Insert the settlement row
	m := mapping.ToModelSettlement(settlement)
	query := `
		INSERT INTO settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.SettlementID,
		m.SettlementType,
		m.PaymentNumber,
		m.PartyID,
		m.InvoiceID,
		m.PaymentDate,
		m.PaymentAmount,
		m.PaymentMethod,
		m.ReferenceNumber,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s payment %s already exists", apperrors.ErrDuplicate, m.SettlementType, m.PaymentNumber)
		}
		return nil, fmt.Errorf("failed to insert settlement %s: %w", m.SettlementID, err)
	}

	// 2. Apply the payment to the invoice, if one is targeted
	var updatedInvoice *domain.Invoice
	if settlement.InvoiceID != nil {
		invoice, err := r.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, *settlement.InvoiceID)
		if err != nil {
			return nil, err
		}
		outstanding := invoice.Outstanding()
		if settlement.PaymentAmount.GreaterThan(outstanding) {
			return nil, fmt.Errorf("%w: invoice %s has %s outstanding, payment of %s exceeds it",
				apperrors.ErrOverpayment, invoice.InvoiceNumber, outstanding, settlement.PaymentAmount)
		}

		newPaid := invoice.PaidAmount.Add(settlement.PaymentAmount)
		newStatus := domain.DerivePaymentStatus(newPaid, invoice.TotalAmount, invoice.DueDate, now)
		if err := r.invoiceRepo.UpdateInvoicePaymentInTx(ctx, tx, invoice.InvoiceID, newPaid, newStatus, userID, now); err != nil {
			return nil, err
		}

		invoice.PaidAmount = newPaid
		invoice.PaymentStatus = newStatus
		invoice.LastUpdatedAt = now
		invoice.LastUpdatedBy = userID
		updatedInvoice = invoice
	}

	// 3. Reduce the party's outstanding balance
	if _, err := r.partyRepo.FindPartyByIDForUpdate(ctx, tx, m.PartyID); err != nil {
		return nil, err
	}
	if err := r.partyRepo.AdjustPartyBalanceInTx(ctx, tx, m.PartyID, settlement.PaymentAmount.Neg(), userID, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updatedInvoice, nil
}

// DeleteSettlement reverses a settlement: the row is deleted and the invoice
// paid amount, payment status, and party balance are rolled back in one
// database transaction.
func (r *PgxSettlementRepository) DeleteSettlement(ctx context.Context, settlementID string, userID string) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// 1. Load and delete the settlement row
	query := `DELETE FROM settlements WHERE settlement_id = $1 RETURNING ` + settlementColumns + `;`
	m, err := scanSettlement(tx.QueryRow(ctx, query, settlementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: settlement %s", apperrors.ErrNotFound, settlementID)
		}
		return nil, fmt.Errorf("failed to delete settlement %s: %w", settlementID, err)
	}
	settlement := mapping.ToDomainSettlement(m)
	now := time.Now().UTC()

	// 2. Roll the payment back off the invoice, if one was targeted
	var updatedInvoice *domain.Invoice
	if settlement.InvoiceID != nil {
		invoice, err := r.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, *settlement.InvoiceID)
		if err != nil {
			return nil, err
		}

		newPaid := invoice.PaidAmount.Sub(settlement.PaymentAmount)
		if newPaid.IsNegative() {
			return nil, fmt.Errorf("%w: reversing settlement %s would drive invoice %s paid amount negative",
				apperrors.ErrInvariantViolation, settlementID, invoice.InvoiceNumber)
		}
		newStatus := domain.DerivePaymentStatus(newPaid, invoice.TotalAmount, invoice.DueDate, now)
		if err := r.invoiceRepo.UpdateInvoicePaymentInTx(ctx, tx, invoice.InvoiceID, newPaid, newStatus, userID, now); err != nil {
			return nil, err
		}

		invoice.PaidAmount = newPaid
		invoice.PaymentStatus = newStatus
		invoice.LastUpdatedAt = now
		invoice.LastUpdatedBy = userID
		updatedInvoice = invoice
	}

	// 3. Restore the party's outstanding balance
	if _, err := r.partyRepo.FindPartyByIDForUpdate(ctx, tx, settlement.PartyID); err != nil {
		return nil, err
	}
	if err := r.partyRepo.AdjustPartyBalanceInTx(ctx, tx, settlement.PartyID, settlement.PaymentAmount, userID, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updatedInvoice, nil
}

// FindSettlementByID retrieves a settlement by its surrogate ID.
func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE settlement_id = $1;`
	m, err := scanSettlement(r.Pool.QueryRow(ctx, query, settlementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: settlement %s", apperrors.ErrNotFound, settlementID)
		}
		return nil, fmt.Errorf("failed to find settlement by ID %s: %w", settlementID, err)
	}
	d := mapping.ToDomainSettlement(m)
	return &d, nil
}

// ListSettlements retrieves a paginated, filtered settlement list.
func (r *PgxSettlementRepository) ListSettlements(ctx context.Context, filter portsrepo.ListSettlementsFilter, limit int, nextToken *string) ([]domain.Settlement, *string, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE settlement_type = $1`
	args := []interface{}{string(filter.SettlementType)}

	if filter.PartyID != nil {
		query += fmt.Sprintf(` AND party_id = $%d`, len(args)+1)
		args = append(args, *filter.PartyID)
	}
	if filter.InvoiceID != nil {
		query += fmt.Sprintf(` AND invoice_id = $%d`, len(args)+1)
		args = append(args, *filter.InvoiceID)
	}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(` AND (created_at, settlement_id) < ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, createdAt, id)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, settlement_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	settlements := []domain.Settlement{}
	for rows.Next() {
		m, err := scanSettlement(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		settlements = append(settlements, mapping.ToDomainSettlement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}

	var token *string
	if len(settlements) > limit {
		settlements = settlements[:limit]
		last := settlements[len(settlements)-1]
		t := pagination.EncodeCursor(last.CreatedAt, last.SettlementID)
		token = &t
	}
	return settlements, token, nil
}
