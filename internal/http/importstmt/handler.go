package importstmt

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintra/fintra/internal/apperror"
	"github.com/fintra/fintra/internal/http/response"
	"github.com/fintra/fintra/internal/importer"
	"github.com/fintra/fintra/internal/ledger"
)

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/parse", h.parse)
	r.Post("/detect-duplicates", h.detectDuplicates)
	r.Post("/commit", h.commit)
}

type candidateDTO struct {
	Date              string          `json:"date"` // YYYY-MM-DD
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	Type              ledger.Type     `json:"type"`
	SuggestedCategory string          `json:"suggested_category,omitempty"`
	IsDuplicate       bool            `json:"is_duplicate"`
	DuplicateID       *uuid.UUID      `json:"duplicate_id,omitempty"`
}

func toCandidateDTO(c importer.Candidate) candidateDTO {
	return candidateDTO{
		Date:              c.Date.Format(time.DateOnly),
		Description:       c.Description,
		Amount:            c.Amount,
		Type:              c.Type,
		SuggestedCategory: c.SuggestedCategory,
		IsDuplicate:       c.IsDuplicate,
		DuplicateID:       c.DuplicateID,
	}
}

func (d candidateDTO) toCandidate() (importer.Candidate, error) {
	date, err := time.Parse(time.DateOnly, d.Date)
	if err != nil {
		return importer.Candidate{}, apperror.InvalidInput("invalid date %q, expected YYYY-MM-DD", d.Date)
	}

	return importer.Candidate{
		Date:              date,
		Description:       d.Description,
		Amount:            d.Amount,
		Type:              d.Type,
		SuggestedCategory: d.SuggestedCategory,
		IsDuplicate:       d.IsDuplicate,
		DuplicateID:       d.DuplicateID,
	}, nil
}

// parse runs the first two pipeline stages: extract candidates from the
// uploaded file, then attach category suggestions.
func (h *Handler) parse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(importer.MaxUploadSize); err != nil {
		response.Err(w, apperror.InvalidInput("failed to parse form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Err(w, apperror.InvalidInput("file field is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, importer.MaxUploadSize+1))
	if err != nil {
		response.Err(w, apperror.InvalidInput("failed to read file: %v", err))
		return
	}

	candidates, err := h.svc.Parse(r.Context(), data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		response.Err(w, err)
		return
	}

	candidates, err = h.svc.Suggest(r.Context(), candidates)
	if err != nil {
		response.Err(w, err)
		return
	}

	out := make([]candidateDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, toCandidateDTO(c))
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"transactions": out,
		"count":        len(out),
	})
}

type detectRequest struct {
	Transactions []candidateDTO `json:"transactions"`
}

func (h *Handler) detectDuplicates(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.InvalidInput("invalid request body: %v", err))
		return
	}

	candidates := make([]importer.Candidate, 0, len(req.Transactions))

	for _, d := range req.Transactions {
		c, err := d.toCandidate()
		if err != nil {
			response.Err(w, err)
			return
		}

		candidates = append(candidates, c)
	}

	flagged, err := h.svc.DetectDuplicates(r.Context(), candidates)
	if err != nil {
		response.Err(w, err)
		return
	}

	out := make([]candidateDTO, 0, len(flagged))
	duplicateCount := 0

	for _, c := range flagged {
		if c.IsDuplicate {
			duplicateCount++
		}

		out = append(out, toCandidateDTO(c))
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"transactions":    out,
		"duplicate_count": duplicateCount,
	})
}

type reviewedRowDTO struct {
	Selected    bool            `json:"selected"`
	ForceImport bool            `json:"force_import"`
	IsDuplicate bool            `json:"is_duplicate"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        ledger.Type     `json:"type"`
	Category    string          `json:"category"`
}

type commitRequest struct {
	Transactions []reviewedRowDTO `json:"transactions"`
	AccountID    uuid.UUID        `json:"account_id"`
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.InvalidInput("invalid request body: %v", err))
		return
	}

	if req.AccountID == uuid.Nil {
		response.Err(w, apperror.InvalidInput("account id is required"))
		return
	}

	rows := make([]importer.ReviewedRow, 0, len(req.Transactions))

	for _, d := range req.Transactions {
		date, err := time.Parse(time.DateOnly, d.Date)
		if err != nil {
			response.Err(w, apperror.InvalidInput("invalid date %q, expected YYYY-MM-DD", d.Date))
			return
		}

		rows = append(rows, importer.ReviewedRow{
			Selected:    d.Selected,
			ForceImport: d.ForceImport,
			IsDuplicate: d.IsDuplicate,
			Date:        date,
			Description: d.Description,
			Amount:      d.Amount,
			Type:        d.Type,
			Category:    d.Category,
		})
	}

	result, err := h.svc.Commit(r.Context(), rows, req.AccountID)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Message(w, http.StatusCreated, "transactions imported successfully", map[string]any{
		"imported_count": result.ImportedCount,
		"skipped_count":  result.SkippedCount,
		"batch_id":       result.BatchID,
	})
}
