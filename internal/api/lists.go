package api

import (
	"net/http"

	"github.com/erazemk/anylist/internal/model"
	"github.com/erazemk/anylist/internal/service"
)

// ListsHandler handles the authenticated user's lists and their entries.
type ListsHandler struct {
	Lists *service.Lists
}

// List handles GET /api/lists.
func (h *ListsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, search, err := pageQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	lists, err := h.Lists.FindAll(r.Context(), CurrentUser(r.Context()).ID, page, search)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, lists)
}

// Create handles POST /api/lists.
func (h *ListsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateListInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.Lists.Create(r.Context(), CurrentUser(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, list)
}

// Get handles GET /api/lists/{id}.
func (h *ListsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ownerID := CurrentUser(r.Context()).ID
	list, err := h.Lists.FindOne(r.Context(), id, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	count, err := h.Lists.CountEntries(r.Context(), id, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, struct {
		*model.List
		ItemCount int `json:"item_count"`
	}{list, count})
}

// Update handles PATCH /api/lists/{id}.
func (h *ListsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req model.UpdateListInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.Lists.Update(r.Context(), id, CurrentUser(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, list)
}

// Delete handles DELETE /api/lists/{id}.
func (h *ListsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.Lists.Remove(r.Context(), id, CurrentUser(r.Context()).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, list)
}

// Entries handles GET /api/lists/{id}/items.
func (h *ListsHandler) Entries(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, search, err := pageQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.Lists.Entries(r.Context(), id, CurrentUser(r.Context()).ID, page, search)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, entries)
}

// CreateEntry handles POST /api/list-items.
func (h *ListsHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req model.CreateListItemInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.Lists.AddEntry(r.Context(), CurrentUser(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, entry)
}

// GetEntry handles GET /api/list-items/{id}.
func (h *ListsHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.Lists.Entry(r.Context(), id, CurrentUser(r.Context()).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}

// UpdateEntry handles PATCH /api/list-items/{id}.
func (h *ListsHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req model.UpdateListItemInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.Lists.UpdateEntry(r.Context(), id, CurrentUser(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/list-items/{id}.
func (h *ListsHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.Lists.RemoveEntry(r.Context(), id, CurrentUser(r.Context()).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}
