package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/levy"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectRunColumns = `
	r.id, r.scheme_id, r.fund_type, r.total_amount, r.period_label,
	r.period_start, r.period_end, r.due_date, r.status, r.issued_at, r.created_at
`

func scanRun(s scanner) (*levy.Run, error) {
	var run levy.Run

	var fundType, status string

	if err := s.Scan(
		&run.ID, &run.SchemeID, &fundType, &run.TotalAmount, &run.PeriodLabel,
		&run.PeriodStart, &run.PeriodEnd, &run.DueDate, &status, &run.IssuedAt, &run.CreatedAt,
	); err != nil {
		return nil, err
	}

	run.FundType = levy.FundType(fundType)
	run.Status = levy.RunStatus(status)

	return &run, nil
}

const selectInvoiceColumns = `
	i.id, i.run_id, i.lot_id, i.amount, i.status, i.sent_at, i.paid_at, i.created_at,
	l.lot_number, l.owner_name, l.owner_email
`

func scanInvoice(s scanner) (*levy.Invoice, error) {
	var inv levy.Invoice

	var status string

	var ownerEmail sql.NullString

	if err := s.Scan(
		&inv.ID, &inv.RunID, &inv.LotID, &inv.Amount, &status, &inv.SentAt, &inv.PaidAt, &inv.CreatedAt,
		&inv.LotNumber, &inv.OwnerName, &ownerEmail,
	); err != nil {
		return nil, err
	}

	inv.Status = levy.InvoiceStatus(status)
	inv.OwnerEmail = ownerEmail.String

	return &inv, nil
}

// CreateRunWithInvoices inserts the run and every invoice inside one database
// transaction. A crash mid-way rolls everything back; no partially created run
// is ever visible.
func (s *Store) CreateRunWithInvoices(ctx context.Context, run *levy.Run, invoices []*levy.Invoice) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	runQuery := `
		INSERT INTO levy_runs (scheme_id, fund_type, total_amount, period_label, period_start, period_end, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, runQuery,
		run.SchemeID,
		run.FundType,
		run.TotalAmount,
		run.PeriodLabel,
		run.PeriodStart,
		run.PeriodEnd,
		run.DueDate,
		run.Status,
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating levy run: %w", err)
	}

	invoiceQuery := `
		INSERT INTO levy_invoices (run_id, lot_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	for _, inv := range invoices {
		inv.RunID = run.ID

		err := dbTx.QueryRowContext(ctx, invoiceQuery,
			inv.RunID,
			inv.LotID,
			inv.Amount,
			inv.Status,
		).Scan(&inv.ID, &inv.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating levy invoice for lot %s: %w", inv.LotID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing levy run: %w", err)
	}

	return nil
}

func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*levy.Run, error) {
	query := `SELECT ` + selectRunColumns + ` FROM levy_runs r WHERE r.id = $1`

	run, err := scanRun(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, levy.ErrRunNotFound
		}

		return nil, fmt.Errorf("getting levy run: %w", err)
	}

	return run, nil
}

func (s *Store) ListRuns(ctx context.Context, schemeID uuid.UUID) ([]*levy.Run, error) {
	query := `SELECT ` + selectRunColumns + `
		FROM levy_runs r
		WHERE r.scheme_id = $1
		ORDER BY r.period_start DESC, r.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, schemeID)
	if err != nil {
		return nil, fmt.Errorf("listing levy runs: %w", err)
	}
	defer rows.Close()

	var runs []*levy.Run

	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning levy run: %w", err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating levy runs: %w", err)
	}

	return runs, nil
}

// DeleteDraftRun deletes a run only while it is still draft. Invoices go with
// it via the ON DELETE CASCADE constraint.
func (s *Store) DeleteDraftRun(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM levy_runs WHERE id = $1 AND status = $2`

	res, err := s.db.ExecContext(ctx, query, id, levy.RunStatusDraft)
	if err != nil {
		return false, fmt.Errorf("deleting levy run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting levy run: %w", err)
	}

	return affected > 0, nil
}

func (s *Store) ListInvoices(ctx context.Context, runID uuid.UUID) ([]*levy.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM levy_invoices i
		JOIN lots l ON i.lot_id = l.id
		WHERE i.run_id = $1
		ORDER BY l.lot_number ASC`

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("listing levy invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*levy.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning levy invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating levy invoices: %w", err)
	}

	return invoices, nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*levy.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM levy_invoices i
		JOIN lots l ON i.lot_id = l.id
		WHERE i.id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, levy.ErrInvoiceNotFound
		}

		return nil, fmt.Errorf("getting levy invoice: %w", err)
	}

	return inv, nil
}

// MarkInvoiceSent only touches status and sent_at; the amount column is never
// part of any UPDATE in this store.
func (s *Store) MarkInvoiceSent(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE levy_invoices
		SET status = $1, sent_at = NOW()
		WHERE id = $2 AND status = $3
	`

	res, err := s.db.ExecContext(ctx, query, levy.InvoiceStatusSent, id, levy.InvoiceStatusPending)
	if err != nil {
		return false, fmt.Errorf("marking invoice sent: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marking invoice sent: %w", err)
	}

	return affected > 0, nil
}

func (s *Store) MarkInvoicePaid(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE levy_invoices
		SET status = $1, paid_at = NOW()
		WHERE id = $2 AND status <> $1
	`

	res, err := s.db.ExecContext(ctx, query, levy.InvoiceStatusPaid, id)
	if err != nil {
		return false, fmt.Errorf("marking invoice paid: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marking invoice paid: %w", err)
	}

	return affected > 0, nil
}

// MarkRunIssued flips a draft run to issued. The status guard makes the flip
// atomic: a second issuance attempt matches zero rows.
func (s *Store) MarkRunIssued(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE levy_runs
		SET status = $1, issued_at = NOW()
		WHERE id = $2 AND status = $3
	`

	res, err := s.db.ExecContext(ctx, query, levy.RunStatusIssued, id, levy.RunStatusDraft)
	if err != nil {
		return false, fmt.Errorf("marking run issued: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marking run issued: %w", err)
	}

	return affected > 0, nil
}
