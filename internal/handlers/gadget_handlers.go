package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/http/response"
)

// SearchGadgets handles catalog search with filtering, sorting and paging
func (h *Handlers) SearchGadgets(w http.ResponseWriter, r *http.Request) {
	q := &domain.GadgetQuery{
		Text:     r.URL.Query().Get("query"),
		Category: r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(w, "minPrice must be a number")
			return
		}
		q.MinPrice = &v
	}
	if raw := r.URL.Query().Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(w, "maxPrice must be a number")
			return
		}
		q.MaxPrice = &v
	}

	q.Sort = domain.ParseSortOrder(r.URL.Query().Get("sort"))

	// Unparsable page/limit fall back to defaults rather than erroring.
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Page = n
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Limit = n
		}
	}

	page, err := h.catalogService.Search(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// CreateGadget handles gadget listing creation by a renter
func (h *Handlers) CreateGadget(w http.ResponseWriter, r *http.Request) {
	var gadget domain.Gadget
	if !decodeJSON(w, r, &gadget) {
		return
	}

	created, err := h.catalogService.CreateGadget(r.Context(), &gadget)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) ListGadgets(w http.ResponseWriter, r *http.Request) {
	gadgets, err := h.catalogService.ListGadgets(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gadgets)
}

func (h *Handlers) GetGadget(w http.ResponseWriter, r *http.Request) {
	gadget, err := h.catalogService.GetGadget(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gadget)
}

func (h *Handlers) GetGadgetBySerialCode(w http.ResponseWriter, r *http.Request) {
	gadget, err := h.catalogService.GetGadgetBySerialCode(r.Context(), chi.URLParam(r, "serialCode"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gadget)
}

func (h *Handlers) UpdateGadget(w http.ResponseWriter, r *http.Request) {
	var patch domain.GadgetPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	updated, err := h.catalogService.UpdateGadget(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		response.FromError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteGadget(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteGadget(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Gadget deleted"})
}
