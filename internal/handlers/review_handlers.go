package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/http/response"
)

func (h *Handlers) AddProductReview(w http.ResponseWriter, r *http.Request) {
	var review domain.Review
	if !decodeJSON(w, r, &review) {
		return
	}
	review.OwnerEmail = ""

	created, err := h.reviewService.AddReview(r.Context(), &review)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reviewService.ListProductReviews(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handlers) AddRenterReview(w http.ResponseWriter, r *http.Request) {
	var review domain.Review
	if !decodeJSON(w, r, &review) {
		return
	}
	review.ProductID = ""

	created, err := h.reviewService.AddReview(r.Context(), &review)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) ListRenterReviews(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reviewService.ListRenterReviews(r.Context(), chi.URLParam(r, "ownerEmail"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
