package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/http/response"
)

// ListNotifications returns the caller's notifications; admins also see
// rows broadcast to the admin role target
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationService.ListFor(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *Handlers) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var n domain.Notification
	if !decodeJSON(w, r, &n) {
		return
	}

	created, err := h.notificationService.Create(r.Context(), &n)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationService.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.notificationService.MarkAllRead(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "modifiedCount": updated})
}

func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteNotificationsByTarget clears everything addressed to one target,
// e.g. ?role=admin wipes the admin broadcast queue
func (h *Handlers) DeleteNotificationsByTarget(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("role")
	if target == "admin" {
		target = domain.AdminTarget
	} else if target == "" {
		target = r.URL.Query().Get("email")
	}

	deleted, err := h.notificationService.DeleteForTarget(r.Context(), target)
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "deletedCount": deleted})
}
