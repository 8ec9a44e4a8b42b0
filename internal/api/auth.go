package api

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/erazemk/anylist/internal/model"
	"github.com/erazemk/anylist/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	Accounts *service.Accounts
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Accounts.SignUp(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusCreated, res)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Accounts.Login(r.Context(), req)
	if err != nil {
		slog.Warn("login failed", "remote", clientIP(r), "request_id", chimw.GetReqID(r.Context()))
		writeError(w, r, err)
		return
	}

	slog.Info("user logged in", "user_id", res.User.ID)
	jsonResponse(w, http.StatusOK, res)
}

// Revalidate handles GET /api/auth/revalidate.
func (h *AuthHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	res, err := h.Accounts.Revalidate(r.Context(), CurrentUser(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.Logout(r.Context(), GetClaims(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("user logged out", "user_id", CurrentUser(r.Context()).ID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}
