package transport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes transport HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/transports", func(r chi.Router) {
		r.Post("/", h.createTransport)       // POST   /api/v1/transports
		r.Get("/", h.listTransports)         // GET    /api/v1/transports
		r.Get("/{id}", h.getTransport)       // GET    /api/v1/transports/{id}
		r.Put("/{id}", h.updateTransport)    // PUT    /api/v1/transports/{id}
		r.Delete("/{id}", h.deleteTransport) // DELETE /api/v1/transports/{id}
	})
}

func (h *Handler) createTransport(w http.ResponseWriter, r *http.Request) {
	var req UpsertTransportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.CreateTransport(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, t)
}

func (h *Handler) listTransports(w http.ResponseWriter, r *http.Request) {
	transports, err := h.service.ListTransports(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, transports)
}

func (h *Handler) getTransport(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.GetTransport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) updateTransport(w http.ResponseWriter, r *http.Request) {
	var req UpsertTransportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.UpdateTransport(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) deleteTransport(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTransport(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "transport deleted"})
}

func statusFor(err error) int {
	switch {
	case strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	case strings.Contains(err.Error(), "required"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
