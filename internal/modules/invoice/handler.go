package invoice

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisheksonias/agrigo-backend/internal/modules/order"
)

// Handler serves generated PDF invoices.
type Handler struct {
	orders  order.Service
	company CompanyInfo
}

func NewHandler(orders order.Service, company CompanyInfo) *Handler {
	return &Handler{orders: orders, company: company}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/invoices/{order_id}", h.getInvoice) // GET /api/v1/invoices/{order_id}
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "order_id")
	o, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	pdf, err := Render(h.company, o)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+id+".pdf"))
	w.Write(pdf)
}
