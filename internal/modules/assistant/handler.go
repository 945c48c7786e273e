package assistant

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the AI assistant endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/assistant", func(r chi.Router) {
		r.Get("/templates", h.templates)
		r.Post("/daily-summary", h.dailySummary)
		r.Post("/{useCase}", h.generate)
	})
}

func (h *Handler) templates(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, DefaultTemplates())
}

func (h *Handler) dailySummary(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.DailySummary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, res)
}

// generate accepts an optional body {"template": "...", "values": {...}}.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	uc, err := ParseUseCase(chi.URLParam(r, "useCase"))
	if err != nil {
		respondError(w, err)
		return
	}
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.UseCase = uc
	res, err := h.service.Generate(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, res)
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownUseCase):
		code = http.StatusNotFound
	case errors.Is(err, ErrGeneration), errors.Is(err, ErrSummary):
		code = http.StatusBadGateway
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
