package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/erazemk/anylist/internal/model"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, errorResponse{Error: message})
}

// writeError maps a domain error to its status code. Anything unrecognized
// is logged and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr      *model.ValidationError
		notFound  *model.NotFoundError
		unauth    *model.UnauthorizedError
		forbidden *model.ForbiddenError
		conflict  *model.ConflictError
		internal  *model.InternalError
		tooLarge  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		jsonResponse(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Fields: verr.Fields})
	case errors.As(err, &notFound):
		jsonError(w, http.StatusNotFound, notFound.Message)
	case errors.As(err, &unauth):
		jsonError(w, http.StatusUnauthorized, unauth.Message)
	case errors.As(err, &forbidden):
		jsonError(w, http.StatusForbidden, forbidden.Message)
	case errors.As(err, &conflict):
		jsonError(w, http.StatusConflict, conflict.Message)
	case errors.As(err, &tooLarge):
		jsonError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.As(err, &internal):
		jsonError(w, http.StatusInternalServerError, model.InternalErrorMessage)
	default:
		slog.Error("unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		jsonError(w, http.StatusInternalServerError, model.InternalErrorMessage)
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return model.ErrValidation("invalid request body")
	}
	return nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	return model.ParseID("id", chi.URLParam(r, "id"))
}

// pageQuery reads limit, offset and search from the query string.
func pageQuery(r *http.Request) (model.Page, model.Search, error) {
	q := r.URL.Query()
	page := model.DefaultPage()

	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &page.Limit}, {"offset", &page.Offset}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, model.Search{}, &model.ValidationError{
				Message: "invalid input",
				Fields:  map[string]string{p.name: "must be an integer"},
			}
		}
		*p.dst = n
	}

	return page, model.Search{Term: q.Get("search")}, nil
}

// rolesQuery reads the roles filter, given repeated or comma-separated.
func rolesQuery(r *http.Request) []model.Role {
	var roles []model.Role
	for _, v := range r.URL.Query()["roles"] {
		for _, role := range strings.Split(v, ",") {
			if role = strings.TrimSpace(role); role != "" {
				roles = append(roles, role)
			}
		}
	}
	return roles
}
