package wire

import (
	"movie-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// GET /tmdb/search?query=&page= - catalog search passthrough
	r.Get("/tmdb/search", catalogHandler.Search)

	// GET /tmdb/movie/{id} - catalog detail passthrough
	r.Get("/tmdb/movie/{id}", catalogHandler.MovieDetails)
}
