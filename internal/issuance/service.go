// Package issuance drives the dispatch of levy notices for a draft run and
// owns the run's one-way transition to issued.
package issuance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MWhitfield89/strata/internal/levy"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=issuance
type Repository interface {
	GetRun(ctx context.Context, id uuid.UUID) (*levy.Run, error)
	ListInvoices(ctx context.Context, runID uuid.UUID) ([]*levy.Invoice, error)
	MarkInvoiceSent(ctx context.Context, id uuid.UUID) (bool, error)
	MarkRunIssued(ctx context.Context, id uuid.UUID) (bool, error)
}

// Sender transmits a single rendered notice. One attempt per call; retry
// policy belongs to the operator, not this package.
type Sender interface {
	Send(ctx context.Context, notice Notice) error
}

// Notice is everything the sender needs to render and address one levy notice.
type Notice struct {
	To          string
	OwnerName   string
	LotNumber   string
	SchemeID    uuid.UUID
	FundType    levy.FundType
	PeriodLabel string
	Amount      int64 // minor currency units
	DueDate     time.Time
}

const defaultWorkers = 4

// skippedListLimit caps the lot numbers returned by IssuePreview for display.
const skippedListLimit = 10

type Service struct {
	repo    Repository
	sender  Sender
	workers int
}

// NewService builds the orchestrator. workers bounds concurrent sends; size it
// to the notification provider's rate limits.
func NewService(repo Repository, sender Sender, workers int) *Service {
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Service{repo: repo, sender: sender, workers: workers}
}

// Preview tells the operator what ConfirmIssue would do: how many notices can
// be emailed and which lots have no usable address.
type Preview struct {
	Sendable          int
	Skipped           int
	SkippedLotNumbers []string // truncated to skippedListLimit entries
}

// IssuePreview partitions a draft run's invoices by owner-email presence.
// Lots without an address are assumed to receive their notice physically, so
// they are advisory information rather than errors.
func (s *Service) IssuePreview(ctx context.Context, runID uuid.UUID) (*Preview, error) {
	run, err := s.repo.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	if run.Status != levy.RunStatusDraft {
		return nil, levy.ErrRunAlreadyIssued
	}

	invoices, err := s.repo.ListInvoices(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	preview := &Preview{}

	for _, inv := range invoices {
		if inv.OwnerEmail == "" {
			preview.Skipped++
			if len(preview.SkippedLotNumbers) < skippedListLimit {
				preview.SkippedLotNumbers = append(preview.SkippedLotNumbers, inv.LotNumber)
			}

			continue
		}

		preview.Sendable++
	}

	return preview, nil
}

// Failure is one recipient whose send attempt errored. It is data, not an
// error: the rest of the batch is unaffected.
type Failure struct {
	InvoiceID uuid.UUID
	LotNumber string
	Email     string
	Reason    string
}

// Result aggregates the per-recipient outcomes of one ConfirmIssue call.
type Result struct {
	Sent     int
	Skipped  int
	Failed   int
	Failures []Failure
}

// ConfirmIssue dispatches one notice per emailable invoice and then flips the
// run to issued. Issued means "dispatch was attempted", not "every recipient
// was reached": individual failures are aggregated into the result and left
// pending for manual follow-up, and never block the run-level transition.
//
// Calling this twice on the same run fails with ErrRunAlreadyIssued on the
// second call and sends nothing.
func (s *Service) ConfirmIssue(ctx context.Context, runID uuid.UUID) (*Result, error) {
	run, err := s.repo.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	if run.Status != levy.RunStatusDraft {
		return nil, levy.ErrRunAlreadyIssued
	}

	invoices, err := s.repo.ListInvoices(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	result := &Result{}

	var sendable []*levy.Invoice

	for _, inv := range invoices {
		if inv.OwnerEmail == "" {
			result.Skipped++
			continue
		}

		sendable = append(sendable, inv)
	}

	// One slot per invoice so workers never share state.
	failures := make([]*Failure, len(sendable))

	var g errgroup.Group

	g.SetLimit(s.workers)

	for i, inv := range sendable {
		g.Go(func() error {
			if sendErr := s.sender.Send(ctx, s.noticeFor(run, inv)); sendErr != nil {
				failures[i] = &Failure{
					InvoiceID: inv.ID,
					LotNumber: inv.LotNumber,
					Email:     inv.OwnerEmail,
					Reason:    sendErr.Error(),
				}

				return nil
			}

			updated, markErr := s.repo.MarkInvoiceSent(ctx, inv.ID)
			if markErr != nil {
				// The notice went out; count it sent and let the ledger
				// catch up on manual re-check.
				slog.Error("notice sent but invoice not marked", "invoice_id", inv.ID, "error", markErr)
			} else if !updated {
				slog.Info("invoice no longer pending after send", "invoice_id", inv.ID)
			}

			return nil
		})
	}

	// Workers never return errors; Wait is purely the join barrier before the
	// status flip.
	_ = g.Wait()

	for _, f := range failures {
		if f == nil {
			result.Sent++
			continue
		}

		result.Failed++
		result.Failures = append(result.Failures, *f)
	}

	updated, err := s.repo.MarkRunIssued(ctx, runID)
	if err != nil {
		return result, fmt.Errorf("marking run issued: %w", err)
	}

	if !updated {
		slog.Warn("run left draft during dispatch", "run_id", runID)
	}

	return result, nil
}

func (s *Service) noticeFor(run *levy.Run, inv *levy.Invoice) Notice {
	return Notice{
		To:          inv.OwnerEmail,
		OwnerName:   inv.OwnerName,
		LotNumber:   inv.LotNumber,
		SchemeID:    run.SchemeID,
		FundType:    run.FundType,
		PeriodLabel: run.PeriodLabel,
		Amount:      inv.Amount,
		DueDate:     run.DueDate,
	}
}
