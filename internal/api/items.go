package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/erazemk/anylist/internal/imaging"
	"github.com/erazemk/anylist/internal/model"
	"github.com/erazemk/anylist/internal/service"
)

// ItemsHandler handles the authenticated user's items.
type ItemsHandler struct {
	Items *service.Items
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, search, err := pageQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.Items.FindAll(r.Context(), CurrentUser(r.Context()).ID, page, search)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateItemInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Items.Create(r.Context(), CurrentUser(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Items.FindOne(r.Context(), id, CurrentUser(r.Context()).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PATCH /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req model.UpdateItemInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Items.Update(r.Context(), id, CurrentUser(r.Context()).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Items.Remove(r.Context(), id, CurrentUser(r.Context()).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// UploadPicture handles PUT /api/items/{id}/picture.
func (h *ItemsHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Leave room for the multipart envelope.
	r.Body = http.MaxBytesReader(w, r.Body, imaging.DefaultMaxBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.DefaultMaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, err)
			return
		}
		writeError(w, r, &model.ValidationError{
			Message: "invalid picture",
			Fields:  map[string]string{"picture": "invalid multipart form"},
		})
		return
	}

	file, _, err := r.FormFile("picture")
	if err != nil {
		writeError(w, r, &model.ValidationError{
			Message: "invalid picture",
			Fields:  map[string]string{"picture": "file required"},
		})
		return
	}
	defer file.Close()

	item, err := h.Items.SetPicture(r.Context(), id, CurrentUser(r.Context()).ID, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// GetPicture handles GET /api/items/{id}/picture.
func (h *ItemsHandler) GetPicture(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data, mime, err := h.Items.Picture(r.Context(), id, CurrentUser(r.Context()).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
