package levy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/allocation"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=levy
type Repository interface {
	// CreateRunWithInvoices persists the run and all its invoices in one
	// transaction so a crash never leaves a run with partial invoices.
	CreateRunWithInvoices(ctx context.Context, run *Run, invoices []*Invoice) error

	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	ListRuns(ctx context.Context, schemeID uuid.UUID) ([]*Run, error)

	// DeleteDraftRun removes a draft run and its invoices, returning false if
	// no draft run matched the id.
	DeleteDraftRun(ctx context.Context, id uuid.UUID) (bool, error)

	ListInvoices(ctx context.Context, runID uuid.UUID) ([]*Invoice, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// MarkInvoiceSent stamps sent_at on a pending invoice, returning false if
	// the invoice was not pending.
	MarkInvoiceSent(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkInvoicePaid stamps paid_at on a not-yet-paid invoice, returning
	// false if the invoice was already paid.
	MarkInvoicePaid(ctx context.Context, id uuid.UUID) (bool, error)
}

// EntitlementSource supplies the current roll of lots and weights for a scheme.
type EntitlementSource interface {
	ListWeightedLots(ctx context.Context, schemeID uuid.UUID) ([]WeightedLot, error)
}

type Service struct {
	repo   Repository
	source EntitlementSource
}

func NewService(repo Repository, source EntitlementSource) *Service {
	return &Service{repo: repo, source: source}
}

// PreviewLine is one lot's proposed allocation.
type PreviewLine struct {
	LotID      uuid.UUID
	LotNumber  string
	Weight     int64
	Percent    float64 // informational only
	Amount     int64
	OwnerName  string
	OwnerEmail string
}

// PreviewResult is a proposed distribution that has not been persisted.
type PreviewResult struct {
	Lines       []PreviewLine
	TotalWeight int64
	TotalAmount int64
	// Balanced is the checksum sum(amounts) == budget, surfaced for display.
	Balanced bool
}

// Preview computes the proposed per-lot allocation for a budget without
// persisting anything. Repeated calls may see a different roll if it changes
// between calls; Confirm re-runs the distribution against current data.
func (s *Service) Preview(ctx context.Context, schemeID uuid.UUID, budget int64, fundType FundType) (*PreviewResult, error) {
	if !fundType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFundType, fundType)
	}

	return s.distribute(ctx, schemeID, budget)
}

// ConfirmParams carries everything needed to create a run.
type ConfirmParams struct {
	SchemeID    uuid.UUID
	FundType    FundType
	TotalAmount int64
	PeriodLabel string
	PeriodStart time.Time
	PeriodEnd   time.Time
	DueDate     time.Time
}

func (p ConfirmParams) validate() error {
	if !p.FundType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFundType, p.FundType)
	}

	if p.PeriodStart.IsZero() || p.PeriodEnd.IsZero() || p.DueDate.IsZero() {
		return fmt.Errorf("%w: period start, end and due date are required", ErrInvalidPeriod)
	}

	if !p.PeriodStart.Before(p.PeriodEnd) {
		return fmt.Errorf("%w: period start %s is not before end %s",
			ErrInvalidPeriod, p.PeriodStart.Format(time.DateOnly), p.PeriodEnd.Format(time.DateOnly))
	}

	return nil
}

// Confirm re-runs the distribution against the current entitlement roll (a
// stale preview is never trusted) and atomically creates the draft run with
// one pending invoice per lot.
func (s *Service) Confirm(ctx context.Context, params ConfirmParams) (*Run, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	preview, err := s.distribute(ctx, params.SchemeID, params.TotalAmount)
	if err != nil {
		return nil, err
	}

	run := &Run{
		SchemeID:    params.SchemeID,
		FundType:    params.FundType,
		TotalAmount: params.TotalAmount,
		PeriodLabel: params.PeriodLabel,
		PeriodStart: params.PeriodStart,
		PeriodEnd:   params.PeriodEnd,
		DueDate:     params.DueDate,
		Status:      RunStatusDraft,
	}

	invoices := make([]*Invoice, len(preview.Lines))
	for i, line := range preview.Lines {
		invoices[i] = &Invoice{
			LotID:  line.LotID,
			Amount: line.Amount,
			Status: InvoiceStatusPending,
		}
	}

	if err := s.repo.CreateRunWithInvoices(ctx, run, invoices); err != nil {
		return nil, fmt.Errorf("creating levy run: %w", err)
	}

	return run, nil
}

// Delete removes a draft run and all its invoices. Issued runs are immutable.
func (s *Service) Delete(ctx context.Context, runID uuid.UUID) error {
	deleted, err := s.repo.DeleteDraftRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("deleting levy run: %w", err)
	}

	if deleted {
		return nil
	}

	// Nothing matched: distinguish a missing run from an issued one.
	if _, err := s.repo.GetRun(ctx, runID); err != nil {
		return err
	}

	return ErrRunAlreadyIssued
}

func (s *Service) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	return s.repo.GetRun(ctx, runID)
}

func (s *Service) ListRuns(ctx context.Context, schemeID uuid.UUID) ([]*Run, error) {
	return s.repo.ListRuns(ctx, schemeID)
}

// RunDetail returns a run together with its invoices and lot contacts.
func (s *Service) RunDetail(ctx context.Context, runID uuid.UUID) (*Run, []*Invoice, error) {
	run, err := s.repo.GetRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}

	invoices, err := s.repo.ListInvoices(ctx, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing invoices: %w", err)
	}

	return run, invoices, nil
}

// MarkSent advances an invoice pending -> sent. Calling it on an invoice that
// already left pending is a logged no-op: dispatch retries may race with
// manual marking and neither side should error.
func (s *Service) MarkSent(ctx context.Context, invoiceID uuid.UUID) error {
	updated, err := s.repo.MarkInvoiceSent(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("marking invoice sent: %w", err)
	}

	if updated {
		return nil
	}

	inv, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}

	slog.Info("mark sent skipped, invoice not pending", "invoice_id", invoiceID, "status", inv.Status)

	return nil
}

// MarkPaid records payment from any pre-paid state. Payments can arrive via
// bank reconciliation before the notice is known to have been sent, so this
// is the one transition allowed out of sequence.
func (s *Service) MarkPaid(ctx context.Context, invoiceID uuid.UUID) error {
	updated, err := s.repo.MarkInvoicePaid(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("marking invoice paid: %w", err)
	}

	if updated {
		return nil
	}

	inv, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}

	slog.Info("mark paid skipped, invoice already paid", "invoice_id", invoiceID, "status", inv.Status)

	return nil
}

func (s *Service) distribute(ctx context.Context, schemeID uuid.UUID, budget int64) (*PreviewResult, error) {
	lots, err := s.source.ListWeightedLots(ctx, schemeID)
	if err != nil {
		return nil, fmt.Errorf("listing weighted lots: %w", err)
	}

	if len(lots) == 0 {
		return nil, ErrNoLotsRegistered
	}

	var totalWeight int64

	entries := make([]allocation.Entry, len(lots))
	for i, lot := range lots {
		entries[i] = allocation.Entry{ID: lot.LotID, Weight: lot.Weight}
		totalWeight += lot.Weight
	}

	if totalWeight == 0 {
		return nil, ErrZeroEntitlement
	}

	shares, err := allocation.Distribute(budget, entries)
	if err != nil {
		return nil, err
	}

	result := &PreviewResult{
		Lines:       make([]PreviewLine, len(lots)),
		TotalWeight: totalWeight,
	}

	for i, lot := range lots {
		result.Lines[i] = PreviewLine{
			LotID:      lot.LotID,
			LotNumber:  lot.LotNumber,
			Weight:     lot.Weight,
			Percent:    allocation.PercentShare(lot.Weight, totalWeight),
			Amount:     shares[i].Amount,
			OwnerName:  lot.OwnerName,
			OwnerEmail: lot.OwnerEmail,
		}
		result.TotalAmount += shares[i].Amount
	}

	result.Balanced = result.TotalAmount == budget

	return result, nil
}
