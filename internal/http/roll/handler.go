package roll

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/entitlement"
	"github.com/MWhitfield89/strata/internal/importer"
)

type Handler struct {
	importSvc *importer.Service
	rollSvc   *entitlement.Service
}

func NewHandler(importSvc *importer.Service, rollSvc *entitlement.Service) *Handler {
	return &Handler{importSvc: importSvc, rollSvc: rollSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/import", h.importRoll)
	r.Get("/", h.list)
}

type lotResponse struct {
	ID          uuid.UUID  `json:"id"`
	LotNumber   string     `json:"lot_number"`
	Entitlement int64      `json:"entitlement"`
	OwnerName   string     `json:"owner_name"`
	OwnerEmail  string     `json:"owner_email,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toLotResponses(lots []*entitlement.Lot) []lotResponse {
	resp := make([]lotResponse, len(lots))
	for i, lot := range lots {
		resp[i] = lotResponse{
			ID:          lot.ID,
			LotNumber:   lot.LotNumber,
			Entitlement: lot.Entitlement,
			OwnerName:   lot.OwnerName,
			OwnerEmail:  lot.OwnerEmail,
			CreatedAt:   lot.CreatedAt,
			UpdatedAt:   lot.UpdatedAt,
		}
	}

	return resp
}

type importResponse struct {
	Imported int           `json:"imported"`
	Lots     []lotResponse `json:"lots"`
}

// importRoll accepts a multipart upload of a roll export and upserts its lots.
func (h *Handler) importRoll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	schemeID, err := uuid.Parse(r.FormValue("scheme_id"))
	if err != nil {
		http.Error(w, "invalid scheme_id", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing roll file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(importer.FormatCSV, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	lots, err := h.rollSvc.ImportRoll(r.Context(), schemeID, params)
	if err != nil {
		if errors.Is(err, entitlement.ErrInvalidLot) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, importResponse{
		Imported: len(lots),
		Lots:     toLotResponses(lots),
	})
}

type listResponse struct {
	LotCount    int           `json:"lot_count"`
	TotalWeight int64         `json:"total_weight"`
	Lots        []lotResponse `json:"lots"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	schemeID, err := uuid.Parse(r.URL.Query().Get("scheme_id"))
	if err != nil {
		http.Error(w, "invalid scheme_id", http.StatusBadRequest)
		return
	}

	lots, err := h.rollSvc.ListLots(r.Context(), schemeID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	totals, err := h.rollSvc.Totals(r.Context(), schemeID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		LotCount:    totals.LotCount,
		TotalWeight: totals.TotalWeight,
		Lots:        toLotResponses(lots),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
