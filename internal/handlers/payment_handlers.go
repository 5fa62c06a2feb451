package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/http/response"
)

type paymentIntentBody struct {
	Amount float64 `json:"amount"`
	Email  string  `json:"email"`
}

// CreatePaymentIntent handles Stripe intent creation and hands the
// client secret back to the caller
func (h *Handlers) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var body paymentIntentBody
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.paymentService.CreateStripeIntent(r.Context(), body.Amount, body.Email)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// RecordPayment persists a completed payment reported by the client
func (h *Handlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var record domain.PaymentRecord
	if !decodeJSON(w, r, &record) {
		return
	}

	created, err := h.paymentService.RecordPayment(r.Context(), &record)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.ListPayments(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

type sslcommerzBody struct {
	Amount float64 `json:"amount"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone"`
}

// InitSSLCommerzPayment starts a hosted-gateway payment and returns the
// redirect URL
func (h *Handlers) InitSSLCommerzPayment(w http.ResponseWriter, r *http.Request) {
	var body sslcommerzBody
	if !decodeJSON(w, r, &body) {
		return
	}

	result, err := h.paymentService.InitSSLCommerz(r.Context(), body.Amount, body.Name, body.Email, body.Phone)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ConfirmSSLCommerzPayment is the gateway success callback; the
// transaction is re-validated server side before the record flips
func (h *Handlers) ConfirmSSLCommerzPayment(w http.ResponseWriter, r *http.Request) {
	tranID := chi.URLParam(r, "tranId")

	valID := r.URL.Query().Get("val_id")
	if valID == "" {
		if err := r.ParseForm(); err == nil {
			valID = r.PostFormValue("val_id")
		}
	}

	record, err := h.paymentService.ConfirmSSLCommerz(r.Context(), tranID, valID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}
