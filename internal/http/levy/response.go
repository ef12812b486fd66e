package levy

import (
	"time"

	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/issuance"
	"github.com/MWhitfield89/strata/internal/levy"
)

type runResponse struct {
	ID          uuid.UUID      `json:"id"`
	SchemeID    uuid.UUID      `json:"scheme_id"`
	FundType    levy.FundType  `json:"fund_type"`
	TotalAmount int64          `json:"total_amount"`
	PeriodLabel string         `json:"period_label"`
	PeriodStart time.Time      `json:"period_start"`
	PeriodEnd   time.Time      `json:"period_end"`
	DueDate     time.Time      `json:"due_date"`
	Status      levy.RunStatus `json:"status"`
	IssuedAt    *time.Time     `json:"issued_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toRunResponse(run *levy.Run) runResponse {
	return runResponse{
		ID:          run.ID,
		SchemeID:    run.SchemeID,
		FundType:    run.FundType,
		TotalAmount: run.TotalAmount,
		PeriodLabel: run.PeriodLabel,
		PeriodStart: run.PeriodStart,
		PeriodEnd:   run.PeriodEnd,
		DueDate:     run.DueDate,
		Status:      run.Status,
		IssuedAt:    run.IssuedAt,
		CreatedAt:   run.CreatedAt,
	}
}

func toRunResponseList(runs []*levy.Run) []runResponse {
	resp := make([]runResponse, len(runs))
	for i, run := range runs {
		resp[i] = toRunResponse(run)
	}

	return resp
}

type invoiceResponse struct {
	ID         uuid.UUID          `json:"id"`
	LotID      uuid.UUID          `json:"lot_id"`
	LotNumber  string             `json:"lot_number"`
	OwnerName  string             `json:"owner_name"`
	OwnerEmail string             `json:"owner_email,omitempty"`
	Amount     int64              `json:"amount"`
	Status     levy.InvoiceStatus `json:"status"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
	PaidAt     *time.Time         `json:"paid_at,omitempty"`
}

type detailResponse struct {
	Run      runResponse       `json:"run"`
	Invoices []invoiceResponse `json:"invoices"`
}

func toDetailResponse(run *levy.Run, invoices []*levy.Invoice) detailResponse {
	resp := detailResponse{
		Run:      toRunResponse(run),
		Invoices: make([]invoiceResponse, len(invoices)),
	}

	for i, inv := range invoices {
		resp.Invoices[i] = invoiceResponse{
			ID:         inv.ID,
			LotID:      inv.LotID,
			LotNumber:  inv.LotNumber,
			OwnerName:  inv.OwnerName,
			OwnerEmail: inv.OwnerEmail,
			Amount:     inv.Amount,
			Status:     inv.Status,
			SentAt:     inv.SentAt,
			PaidAt:     inv.PaidAt,
		}
	}

	return resp
}

type previewLineResponse struct {
	LotID     uuid.UUID `json:"lot_id"`
	LotNumber string    `json:"lot_number"`
	Weight    int64     `json:"weight"`
	Percent   float64   `json:"percent"`
	Amount    int64     `json:"amount"`
}

type previewResponse struct {
	Lines       []previewLineResponse `json:"lines"`
	TotalWeight int64                 `json:"total_weight"`
	TotalAmount int64                 `json:"total_amount"`
	Balanced    bool                  `json:"balanced"`
}

func toPreviewResponse(result *levy.PreviewResult) previewResponse {
	resp := previewResponse{
		Lines:       make([]previewLineResponse, len(result.Lines)),
		TotalWeight: result.TotalWeight,
		TotalAmount: result.TotalAmount,
		Balanced:    result.Balanced,
	}

	for i, line := range result.Lines {
		resp.Lines[i] = previewLineResponse{
			LotID:     line.LotID,
			LotNumber: line.LotNumber,
			Weight:    line.Weight,
			Percent:   line.Percent,
			Amount:    line.Amount,
		}
	}

	return resp
}

type issuePreviewResponse struct {
	Sendable          int      `json:"sendable"`
	Skipped           int      `json:"skipped"`
	SkippedLotNumbers []string `json:"skipped_lot_numbers,omitempty"`
}

func toIssuePreviewResponse(p *issuance.Preview) issuePreviewResponse {
	return issuePreviewResponse{
		Sendable:          p.Sendable,
		Skipped:           p.Skipped,
		SkippedLotNumbers: p.SkippedLotNumbers,
	}
}

type failureResponse struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
	LotNumber string    `json:"lot_number"`
	Email     string    `json:"email"`
	Reason    string    `json:"reason"`
}

type issueResultResponse struct {
	Sent     int               `json:"sent"`
	Skipped  int               `json:"skipped"`
	Failed   int               `json:"failed"`
	Failures []failureResponse `json:"failures,omitempty"`
}

func toIssueResultResponse(result *issuance.Result) issueResultResponse {
	resp := issueResultResponse{
		Sent:    result.Sent,
		Skipped: result.Skipped,
		Failed:  result.Failed,
	}

	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, failureResponse{
			InvoiceID: f.InvoiceID,
			LotNumber: f.LotNumber,
			Email:     f.Email,
			Reason:    f.Reason,
		})
	}

	return resp
}
