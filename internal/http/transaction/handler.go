package transaction

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintra/fintra/internal/apperror"
	"github.com/fintra/fintra/internal/http/response"
	"github.com/fintra/fintra/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type transactionRequest struct {
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Type       ledger.Type     `json:"type"`
	CategoryID uuid.UUID       `json:"category_id"`
	AccountID  uuid.UUID       `json:"account_id"`
	Note       string          `json:"note"`
}

type transactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Type          ledger.Type     `json:"type"`
	CategoryID    uuid.UUID       `json:"category_id"`
	CategoryName  string          `json:"category_name,omitempty"`
	AccountID     uuid.UUID       `json:"account_id"`
	AccountName   string          `json:"account_name,omitempty"`
	Note          string          `json:"note,omitempty"`
	ImportBatchID *uuid.UUID      `json:"import_batch_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toResponse(t *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:            t.ID,
		Date:          t.Date,
		Amount:        t.Amount,
		Type:          t.Type,
		CategoryID:    t.CategoryID,
		CategoryName:  t.CategoryName,
		AccountID:     t.AccountID,
		AccountName:   t.AccountName,
		Note:          t.Note,
		ImportBatchID: t.ImportBatchID,
		CreatedAt:     t.CreatedAt,
	}
}

func (req transactionRequest) toParams() ledger.Params {
	return ledger.Params{
		Date:       req.Date,
		Amount:     req.Amount,
		Type:       req.Type,
		CategoryID: req.CategoryID,
		AccountID:  req.AccountID,
		Note:       req.Note,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.InvalidInput("invalid request body: %v", err))
		return
	}

	t, err := h.svc.Create(r.Context(), req.toParams())
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Message(w, http.StatusCreated, "transaction created successfully",
		map[string]any{"transaction": toResponse(t)})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		response.Err(w, err)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		response.Err(w, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toResponse(t))
	}

	response.JSON(w, http.StatusOK, map[string]any{"transactions": out})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apperror.InvalidInput("invalid transaction id"))
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"transaction": toResponse(t)})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apperror.InvalidInput("invalid transaction id"))
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.InvalidInput("invalid request body: %v", err))
		return
	}

	t, err := h.svc.Update(r.Context(), id, req.toParams())
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Message(w, http.StatusOK, "transaction updated successfully",
		map[string]any{"transaction": toResponse(t)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apperror.InvalidInput("invalid transaction id"))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.Err(w, err)
		return
	}

	response.Message(w, http.StatusOK, "transaction deleted successfully", nil)
}

func parseListFilter(r *http.Request) (ledger.ListFilter, error) {
	var filter ledger.ListFilter

	q := r.URL.Query()

	if v := q.Get("account"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, apperror.InvalidInput("invalid account filter")
		}

		filter.AccountID = &id
	}

	if v := q.Get("category"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, apperror.InvalidInput("invalid category filter")
		}

		filter.CategoryID = &id
	}

	if v := q.Get("type"); v != "" {
		t := ledger.Type(v)
		if !t.Valid() {
			return filter, apperror.InvalidInput("invalid type filter")
		}

		filter.Type = &t
	}

	if v := q.Get("start_date"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return filter, apperror.InvalidInput("invalid start_date, expected YYYY-MM-DD")
		}

		filter.StartDate = &d
	}

	if v := q.Get("end_date"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return filter, apperror.InvalidInput("invalid end_date, expected YYYY-MM-DD")
		}

		filter.EndDate = &d
	}

	return filter, nil
}
