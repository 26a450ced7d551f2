package account

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintra/fintra/internal/account"
	"github.com/fintra/fintra/internal/apperror"
	"github.com/fintra/fintra/internal/http/response"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/total-balance", h.totalBalance)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type accountResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

type accountRequest struct {
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:          a.ID,
		Name:        a.Name,
		Balance:     a.Balance,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toResponse(a))
	}

	response.JSON(w, http.StatusOK, map[string]any{"accounts": out})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.InvalidInput("invalid request body: %v", err))
		return
	}

	a, err := h.svc.Create(r.Context(), account.Params{
		Name:        req.Name,
		Balance:     req.Balance,
		Description: req.Description,
	})
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Message(w, http.StatusCreated, "account created successfully",
		map[string]any{"account": toResponse(a)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apperror.InvalidInput("invalid account id"))
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"account": toResponse(a)})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apperror.InvalidInput("invalid account id"))
		return
	}

	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.InvalidInput("invalid request body: %v", err))
		return
	}

	a, err := h.svc.Update(r.Context(), id, account.Params{
		Name:        req.Name,
		Balance:     req.Balance,
		Description: req.Description,
	})
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Message(w, http.StatusOK, "account updated successfully",
		map[string]any{"account": toResponse(a)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apperror.InvalidInput("invalid account id"))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.Err(w, err)
		return
	}

	response.Message(w, http.StatusOK, "account deleted successfully", nil)
}

func (h *Handler) totalBalance(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.TotalBalance(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"total_balance": total})
}
