package category

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fintra/fintra/internal/apperror"
	"github.com/fintra/fintra/internal/category"
	"github.com/fintra/fintra/internal/http/response"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/seed", h.seed)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type categoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type categoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      string(c.Polarity),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toResponse(c))
	}

	response.JSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.InvalidInput("invalid request body: %v", err))
		return
	}

	c, err := h.svc.Create(r.Context(), category.Params{
		Name:     req.Name,
		Polarity: category.Polarity(req.Type),
	})
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Message(w, http.StatusCreated, "category created successfully",
		map[string]any{"category": toResponse(c)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apperror.InvalidInput("invalid category id"))
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"category": toResponse(c)})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apperror.InvalidInput("invalid category id"))
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.InvalidInput("invalid request body: %v", err))
		return
	}

	c, err := h.svc.Update(r.Context(), id, category.Params{
		Name:     req.Name,
		Polarity: category.Polarity(req.Type),
	})
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Message(w, http.StatusOK, "category updated successfully",
		map[string]any{"category": toResponse(c)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apperror.InvalidInput("invalid category id"))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.Err(w, err)
		return
	}

	response.Message(w, http.StatusOK, "category deleted successfully", nil)
}

func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	seeded, err := h.svc.SeedDefaults(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}

	if !seeded {
		response.Message(w, http.StatusOK, "categories already initialized", nil)
		return
	}

	response.Message(w, http.StatusCreated, "default categories initialized successfully", nil)
}
