package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/http/response"
)

// AddToWishlist handles adding a gadget to a user's wishlist
func (h *Handlers) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var item domain.WishlistItem
	if !decodeJSON(w, r, &item) {
		return
	}

	created, err := h.commerceService.AddToWishlist(r.Context(), &item)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) ListWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.commerceService.ListWishlist(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.commerceService.RemoveFromWishlist(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Removed from wishlist"})
}

// AddToCart handles adding a gadget to the cart; re-adding increments
// the stored quantity instead of creating a second row
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var item domain.CartItem
	if !decodeJSON(w, r, &item) {
		return
	}

	created, err := h.commerceService.AddToCart(r.Context(), &item)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) ListCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.commerceService.ListCart(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type cartQuantityBody struct {
	Quantity json.Number `json:"quantity"`
}

// UpdateCartQuantity handles quantity changes. A non-numeric or
// non-positive quantity gets the same validation message so the client
// has one string to surface.
func (h *Handlers) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	var body cartQuantityBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Quantity must be a positive number")
		return
	}

	quantity, err := body.Quantity.Int64()
	if err != nil {
		response.BadRequest(w, "Quantity must be a positive number")
		return
	}

	item, err := h.commerceService.UpdateCartQuantity(r.Context(), chi.URLParam(r, "id"), int(quantity))
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	if err := h.commerceService.RemoveFromCart(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Removed from cart"})
}

// ClearCart empties a user's cart, typically after checkout
func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.commerceService.ClearCart(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "deletedCount": deleted})
}
