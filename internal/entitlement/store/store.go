package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/entitlement"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectLotColumns = `
	l.id, l.scheme_id, l.lot_number, l.entitlement, l.owner_name, l.owner_email,
	l.created_at, l.updated_at
`

func scanLot(s scanner) (*entitlement.Lot, error) {
	var lot entitlement.Lot

	var ownerEmail sql.NullString

	if err := s.Scan(
		&lot.ID, &lot.SchemeID, &lot.LotNumber, &lot.Entitlement, &lot.OwnerName, &ownerEmail,
		&lot.CreatedAt, &lot.UpdatedAt,
	); err != nil {
		return nil, err
	}

	lot.OwnerEmail = ownerEmail.String

	return &lot, nil
}

// UpsertLots writes the whole batch inside one transaction, keyed on
// (scheme_id, lot_number) so re-importing a roll updates in place.
func (s *Store) UpsertLots(ctx context.Context, schemeID uuid.UUID, params []entitlement.LotParams) ([]*entitlement.Lot, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO lots (scheme_id, lot_number, entitlement, owner_name, owner_email, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (scheme_id, lot_number) DO UPDATE
		SET entitlement = EXCLUDED.entitlement,
			owner_name = EXCLUDED.owner_name,
			owner_email = EXCLUDED.owner_email,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	lots := make([]*entitlement.Lot, len(params))

	for i, p := range params {
		lot := &entitlement.Lot{
			SchemeID:    schemeID,
			LotNumber:   p.LotNumber,
			Entitlement: p.Entitlement,
			OwnerName:   p.OwnerName,
			OwnerEmail:  p.OwnerEmail,
		}

		var email any
		if p.OwnerEmail != "" {
			email = p.OwnerEmail
		}

		err := dbTx.QueryRowContext(ctx, query,
			schemeID,
			p.LotNumber,
			p.Entitlement,
			p.OwnerName,
			email,
		).Scan(&lot.ID, &lot.CreatedAt, &lot.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("upserting lot %s: %w", p.LotNumber, err)
		}

		lots[i] = lot
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing roll import: %w", err)
	}

	return lots, nil
}

func (s *Store) ListLots(ctx context.Context, schemeID uuid.UUID) ([]*entitlement.Lot, error) {
	query := `SELECT ` + selectLotColumns + `
		FROM lots l
		WHERE l.scheme_id = $1
		ORDER BY l.lot_number ASC`

	rows, err := s.db.QueryContext(ctx, query, schemeID)
	if err != nil {
		return nil, fmt.Errorf("listing lots: %w", err)
	}
	defer rows.Close()

	var lots []*entitlement.Lot

	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lot: %w", err)
		}

		lots = append(lots, lot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lots: %w", err)
	}

	return lots, nil
}

func (s *Store) Totals(ctx context.Context, schemeID uuid.UUID) (entitlement.Totals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(entitlement), 0)
		FROM lots
		WHERE scheme_id = $1
	`

	var totals entitlement.Totals

	err := s.db.QueryRowContext(ctx, query, schemeID).Scan(&totals.LotCount, &totals.TotalWeight)
	if err != nil {
		return entitlement.Totals{}, fmt.Errorf("summing entitlements: %w", err)
	}

	return totals, nil
}
