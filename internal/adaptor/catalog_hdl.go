package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// Search handles GET /tmdb/search?query=q&page=n. "q" is accepted as an alias.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := params.Get("query")
	if query == "" {
		query = params.Get("q")
	}

	page := 1
	if raw := params.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.ResponseBadRequest(w, "Invalid page", nil)
			return
		}
		page = n
	}

	result, err := h.service.Search(r.Context(), query, page)
	if err != nil {
		respondError(w, h.log, err, "search catalog", "TMDb search failed")
		return
	}

	writeRawJSON(w, result)
}

// MovieDetails handles GET /tmdb/movie/{id}
func (h *CatalogHandler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Details(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "fetch catalog movie", "TMDb movie fetch failed")
		return
	}

	writeRawJSON(w, result)
}

// writeRawJSON relays the upstream body byte for byte.
func writeRawJSON(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
