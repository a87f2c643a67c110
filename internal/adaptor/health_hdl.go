package adaptor

import (
	"net/http"

	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"
)

type HealthHandler struct {
	storeDriver string
}

func NewHealthHandler(storeDriver string) *HealthHandler {
	return &HealthHandler{storeDriver: storeDriver}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("TMDB backend is running successfully"))
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, response.HealthResponse{Status: "ok", Store: h.storeDriver})
}
