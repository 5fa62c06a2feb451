package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/soniabinty/gizmorent-server/internal/http/response"
)

type renterRequestBody struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SubmitRenterRequest handles a user asking to become a renter
func (h *Handlers) SubmitRenterRequest(w http.ResponseWriter, r *http.Request) {
	var body renterRequestBody
	if !decodeJSON(w, r, &body) {
		return
	}

	req, err := h.renterService.SubmitRequest(r.Context(), body.Email, body.Name)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

func (h *Handlers) ListRenterRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.renterService.ListRequests(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// ApproveRenter promotes the user and issues a renter code
func (h *Handlers) ApproveRenter(w http.ResponseWriter, r *http.Request) {
	user, err := h.renterService.Approve(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// RejectRenter discards the pending request without touching the role
func (h *Handlers) RejectRenter(w http.ResponseWriter, r *http.Request) {
	if err := h.renterService.Reject(r.Context(), chi.URLParam(r, "email")); err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Renter request rejected"})
}

func (h *Handlers) ListRenterRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.renterService.ListRecords(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
