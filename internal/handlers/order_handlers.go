package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/http/response"
)

// PlaceOrders handles checkout: the whole cart arrives as one batch
func (h *Handlers) PlaceOrders(w http.ResponseWriter, r *http.Request) {
	var orders []domain.Order
	if !decodeJSON(w, r, &orders) {
		return
	}

	placed, err := h.orderService.PlaceOrders(r.Context(), orders)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, placed)
}

// ListOrders serves three views off one route: all orders, a customer's
// orders (?email=) or a renter's incoming orders (?renter=)
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		orders, err := h.orderService.ListOrdersByCustomer(r.Context(), email)
		if err != nil {
			response.FromError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, orders)
		return
	}

	if renter := r.URL.Query().Get("renter"); renter != "" {
		orders, err := h.orderService.ListOrdersByRenter(r.Context(), renter)
		if err != nil {
			response.FromError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, orders)
		return
	}

	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type orderStatusBody struct {
	Status string `json:"status"`
}

func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body orderStatusBody
	if !decodeJSON(w, r, &body) {
		return
	}

	status, ok := domain.ParseOrderStatus(body.Status)
	if !ok {
		response.BadRequest(w, "Invalid order status")
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
