package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/http/response"
)

// Register handles email/password account creation
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles email/password authentication with lockout
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SocialLogin handles Google sign-in, upserting the user on first sight
func (h *Handlers) SocialLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.SocialLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authService.SocialLogin(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUser(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUser lets a user edit their own profile; admins can edit anyone.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	email := domain.NormalizeEmail(chi.URLParam(r, "email"))
	if claims := getClaims(r); claims != nil && claims.Email != email && claims.Role != domain.RoleAdmin {
		response.Forbidden(w, "You can only update your own profile")
		return
	}

	var patch domain.UserPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	user, err := h.authService.UpdateUser(r.Context(), email, &patch)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// CheckAdmin reports whether the user holds the admin role. An unknown
// user is simply not an admin, never an error.
func (h *Handlers) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	isAdmin, err := h.authService.IsAdmin(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"admin": isAdmin})
}

func (h *Handlers) CheckRenter(w http.ResponseWriter, r *http.Request) {
	isRenter, err := h.authService.IsRenter(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"renter": isRenter})
}
