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

const partyColumns = `party_id, party_type, code, name, email, phone, address, credit_limit, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for customer/supplier data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

func scanParty(row pgx.Row) (models.Party, error) {
	var m models.Party
	err := row.Scan(
		&m.PartyID,
		&m.PartyType,
		&m.Code,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Address,
		&m.CreditLimit,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveParty inserts a new party.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)

	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.PartyType,
		m.Code,
		m.Name,
		m.Email,
		m.Phone,
		m.Address,
		m.CreditLimit,
		m.CurrentBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s with code %s already exists", apperrors.ErrDuplicate, m.PartyType, m.Code)
		}
		return fmt.Errorf("failed to save party %s: %w", m.PartyID, err)
	}
	return nil
}

// FindPartyByID retrieves a party by its surrogate ID.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1;`
	m, err := scanParty(r.Pool.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: party %s", apperrors.ErrNotFound, partyID)
		}
		return nil, fmt.Errorf("failed to find party by ID %s: %w", partyID, err)
	}
	d := mapping.ToDomainParty(m)
	return &d, nil
}

// FindPartyByCode retrieves a party by type and business key.
func (r *PgxPartyRepository) FindPartyByCode(ctx context.Context, partyType domain.PartyType, code string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_type = $1 AND code = $2;`
	m, err := scanParty(r.Pool.QueryRow(ctx, query, string(partyType), code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s with code %s", apperrors.ErrNotFound, partyType, code)
		}
		return nil, fmt.Errorf("failed to find party by code %s: %w", code, err)
	}
	d := mapping.ToDomainParty(m)
	return &d, nil
}

// ListParties retrieves a paginated list of parties of one type.
func (r *PgxPartyRepository) ListParties(ctx context.Context, partyType domain.PartyType, limit int, nextToken *string) ([]domain.Party, *string, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_type = $1`
	args := []interface{}{string(partyType)}

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, party_id) < ($2, $3)`
		args = append(args, createdAt, id)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, party_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		m, err := scanParty(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, mapping.ToDomainParty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating party rows: %w", err)
	}

	var token *string
	if len(parties) > limit {
		parties = parties[:limit]
		last := parties[len(parties)-1]
		t := pagination.EncodeCursor(last.CreatedAt, last.PartyID)
		token = &t
	}
	return parties, token, nil
}

// UpdateParty updates mutable party fields. The balance rollup is
// deliberately excluded; it only changes via AdjustPartyBalanceInTx.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	query := `
		UPDATE parties
		SET name = $2, email = $3, phone = $4, address = $5, credit_limit = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE party_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.Name,
		m.Email,
		m.Phone,
		m.Address,
		m.CreditLimit,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update party %s: %w", m.PartyID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: party %s", apperrors.ErrNotFound, m.PartyID)
	}
	return nil
}

// DeactivateParty marks a party inactive.
func (r *PgxPartyRepository) DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error {
	query := `UPDATE parties SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3 WHERE party_id = $1;`
	ct, err := r.Pool.Exec(ctx, query, partyID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate party %s: %w", partyID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: party %s", apperrors.ErrNotFound, partyID)
	}
	return nil
}

// FindPartyByIDForUpdate retrieves a party and locks the row for update.
// Must be called within a transaction.
func (r *PgxPartyRepository) FindPartyByIDForUpdate(ctx context.Context, tx pgx.Tx, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1 FOR UPDATE;`
	m, err := scanParty(tx.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: party %s", apperrors.ErrNotFound, partyID)
		}
		return nil, fmt.Errorf("failed to lock party %s: %w", partyID, err)
	}
	d := mapping.ToDomainParty(m)
	return &d, nil
}

// AdjustPartyBalanceInTx applies a signed delta to a locked party row's balance.
func (r *PgxPartyRepository) AdjustPartyBalanceInTx(ctx context.Context, tx pgx.Tx, partyID string, delta decimal.Decimal, userID string, now time.Time) error {
	if delta.IsZero() {
		return nil
	}
	query := `
		UPDATE parties
		SET current_balance = COALESCE(current_balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE party_id = $1;
	`
	ct, err := tx.Exec(ctx, query, partyID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance for party %s: %w", partyID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: party %s not found during balance adjustment", apperrors.ErrNotFound, partyID)
	}
	return nil
}
