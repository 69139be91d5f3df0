package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)                       // POST   /api/v1/orders
		r.Get("/", h.listOrders)                         // GET    /api/v1/orders?status=Confirmed&from=&to=
		r.Get("/{id}", h.getOrder)                       // GET    /api/v1/orders/{id}
		r.Put("/{id}", h.updateOrder)                    // PUT    /api/v1/orders/{id}
		r.Delete("/{id}", h.deleteOrder)                 // DELETE /api/v1/orders/{id}
		r.Post("/{id}/confirm", h.confirm)               // POST   /api/v1/orders/{id}/confirm
		r.Post("/{id}/dispatch", h.dispatch)             // POST   /api/v1/orders/{id}/dispatch
		r.Post("/{id}/dispatch/full", h.dispatchAll)     // POST   /api/v1/orders/{id}/dispatch/full
		r.Post("/{id}/dispatch/reverse", h.reverse)      // POST   /api/v1/orders/{id}/dispatch/reverse
		r.Post("/{id}/deliver", h.deliver)               // POST   /api/v1/orders/{id}/deliver
		r.Post("/{id}/cancel", h.cancel)                 // POST   /api/v1/orders/{id}/cancel
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	from, err := parseTimeParam(r.URL.Query().Get("from"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	to, err := parseTimeParam(r.URL.Query().Get("to"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	orders, err := h.service.ListOrders(r.Context(), status, from, to)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateOrder(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "order deleted"})
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	h.workflow(w, r, func(id string) (*Order, error) {
		return h.service.Confirm(r.Context(), id)
	})
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.workflow(w, r, func(id string) (*Order, error) {
		return h.service.Dispatch(r.Context(), id, req)
	})
}

func (h *Handler) dispatchAll(w http.ResponseWriter, r *http.Request) {
	var req FullDispatchRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	h.workflow(w, r, func(id string) (*Order, error) {
		return h.service.DispatchAll(r.Context(), id, req)
	})
}

func (h *Handler) reverse(w http.ResponseWriter, r *http.Request) {
	h.workflow(w, r, func(id string) (*Order, error) {
		return h.service.ReverseDispatch(r.Context(), id)
	})
}

func (h *Handler) deliver(w http.ResponseWriter, r *http.Request) {
	h.workflow(w, r, func(id string) (*Order, error) {
		return h.service.Deliver(r.Context(), id)
	})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.workflow(w, r, func(id string) (*Order, error) {
		return h.service.Cancel(r.Context(), id)
	})
}

// workflow runs one status-transition operation and writes the result.
func (h *Handler) workflow(w http.ResponseWriter, r *http.Request, op func(id string) (*Order, error)) {
	o, err := op(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func statusFor(err error) int {
	var insufficient *InsufficientStockError
	var overDispatch *OverDispatchError
	switch {
	case errors.Is(err, ErrInvalidState),
		errors.As(err, &insufficient),
		errors.As(err, &overDispatch):
		return http.StatusUnprocessableEntity
	case strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	case strings.Contains(err.Error(), "required"),
		strings.Contains(err.Error(), "invalid product_id"),
		strings.Contains(err.Error(), "must"),
		strings.Contains(err.Error(), "negative"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseTimeParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		// Date-only form is accepted too.
		t, err = time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
