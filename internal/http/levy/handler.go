package levy

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/allocation"
	"github.com/MWhitfield89/strata/internal/issuance"
	"github.com/MWhitfield89/strata/internal/levy"
)

type Handler struct {
	svc      *levy.Service
	issueSvc *issuance.Service
}

func NewHandler(svc *levy.Service, issueSvc *issuance.Service) *Handler {
	return &Handler{svc: svc, issueSvc: issueSvc}
}

func (h *Handler) RunRoutes(r chi.Router) {
	r.Post("/preview", h.preview)
	r.Post("/", h.confirm)
	r.Get("/", h.list)
	r.Get("/{id}", h.detail)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/issue-preview", h.issuePreview)
	r.Post("/{id}/issue", h.issue)
}

func (h *Handler) InvoiceRoutes(r chi.Router) {
	r.Post("/{id}/sent", h.markSent)
	r.Post("/{id}/paid", h.markPaid)
}

// writeError maps domain errors onto HTTP statuses. Validation failures are
// the operator's to fix; state conflicts mean the client view is stale.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, levy.ErrRunNotFound), errors.Is(err, levy.ErrInvoiceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, levy.ErrRunAlreadyIssued):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, levy.ErrNoLotsRegistered),
		errors.Is(err, levy.ErrZeroEntitlement),
		errors.Is(err, levy.ErrInvalidPeriod),
		errors.Is(err, levy.ErrInvalidFundType),
		errors.Is(err, allocation.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type previewRequest struct {
	SchemeID    uuid.UUID     `json:"scheme_id"`
	FundType    levy.FundType `json:"fund_type"`
	TotalAmount int64         `json:"total_amount"`
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.Preview(r.Context(), req.SchemeID, req.TotalAmount, req.FundType)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPreviewResponse(result))
}

type confirmRequest struct {
	SchemeID    uuid.UUID     `json:"scheme_id"`
	FundType    levy.FundType `json:"fund_type"`
	TotalAmount int64         `json:"total_amount"`
	PeriodLabel string        `json:"period_label"`
	PeriodStart time.Time     `json:"period_start"`
	PeriodEnd   time.Time     `json:"period_end"`
	DueDate     time.Time     `json:"due_date"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	run, err := h.svc.Confirm(r.Context(), levy.ConfirmParams{
		SchemeID:    req.SchemeID,
		FundType:    req.FundType,
		TotalAmount: req.TotalAmount,
		PeriodLabel: req.PeriodLabel,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRunResponse(run))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	schemeID, err := uuid.Parse(r.URL.Query().Get("scheme_id"))
	if err != nil {
		http.Error(w, "invalid scheme_id", http.StatusBadRequest)
		return
	}

	runs, err := h.svc.ListRuns(r.Context(), schemeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRunResponseList(runs))
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	run, invoices, err := h.svc.RunDetail(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDetailResponse(run, invoices))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) issuePreview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	preview, err := h.issueSvc.IssuePreview(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toIssuePreviewResponse(preview))
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	result, err := h.issueSvc.ConfirmIssue(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toIssueResultResponse(result))
}

func (h *Handler) markSent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.MarkSent(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.MarkPaid(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
