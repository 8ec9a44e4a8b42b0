package api

import (
	"net/http"

	"github.com/erazemk/anylist/internal/service"
)

// SeedHandler resets the database to the demo dataset.
type SeedHandler struct {
	Seeder *service.Seeder
}

// Seed handles POST /api/seed.
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	res, err := h.Seeder.Seed(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}
