package menu

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes menu HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/menu", func(r chi.Router) {
		r.Get("/items", h.listItems) // ?category=Dessert
		r.Post("/items", h.createItem)
		r.Get("/items/{id}", h.getItem)
		r.Put("/items/{id}", h.updateItem)
		r.Get("/sections", h.sections)
		r.Post("/describe", h.describe)
	})
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	var category Category
	if c := r.URL.Query().Get("category"); c != "" {
		parsed, err := ParseCategory(c)
		if err != nil {
			respondError(w, err)
			return
		}
		category = parsed
	}
	items, err := h.service.ListItems(r.Context(), category)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []*Item{}
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	it, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, it)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.service.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, it)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	it, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, it)
}

func (h *Handler) sections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.service.GroupByCategory(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, sections)
}

// describe reports generator failures as 502 with the generator's message.
func (h *Handler) describe(w http.ResponseWriter, r *http.Request) {
	var req DescribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	resp, err := h.service.GenerateDescription(r.Context(), req)
	switch {
	case err == nil:
		respond(w, http.StatusOK, resp)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrValidation):
		respondError(w, err)
	case errors.Is(err, ErrNoDescriber):
		respond(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	default:
		respond(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrValidation):
		code = http.StatusBadRequest
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
