package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/erazemk/anylist/internal/model"
	"github.com/erazemk/anylist/internal/service"
)

// UsersHandler handles user administration endpoints.
type UsersHandler struct {
	Accounts *service.Accounts
	Items    *service.Items
	Lists    *service.Lists
}

// List handles GET /api/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	page, search, err := pageQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.Accounts.FindAll(r.Context(), rolesQuery(r), page, search)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ov, err := h.Accounts.Overview(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, ov)
}

// Update handles PATCH /api/users/{id}.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req model.UpdateUserInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Accounts.Update(r.Context(), id, req, CurrentUser(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// Block handles POST /api/users/{id}/block.
func (h *UsersHandler) Block(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Accounts.Block(r.Context(), id, CurrentUser(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// OwnedItems handles GET /api/users/{id}/items.
func (h *UsersHandler) OwnedItems(w http.ResponseWriter, r *http.Request) {
	id, page, search, err := h.ownerQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.Items.FindAll(r.Context(), id, page, search)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// OwnedLists handles GET /api/users/{id}/lists.
func (h *UsersHandler) OwnedLists(w http.ResponseWriter, r *http.Request) {
	id, page, search, err := h.ownerQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	lists, err := h.Lists.FindAll(r.Context(), id, page, search)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, lists)
}

// ownerQuery reads the user id and paging of an owned-collection request.
// An unknown user is reported as not found.
func (h *UsersHandler) ownerQuery(r *http.Request) (uuid.UUID, model.Page, model.Search, error) {
	id, err := pathID(r)
	if err != nil {
		return uuid.Nil, model.Page{}, model.Search{}, err
	}
	page, search, err := pageQuery(r)
	if err != nil {
		return uuid.Nil, model.Page{}, model.Search{}, err
	}
	if _, err := h.Accounts.FindOne(r.Context(), id); err != nil {
		return uuid.Nil, model.Page{}, model.Search{}, err
	}
	return id, page, search, nil
}
