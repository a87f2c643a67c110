package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

// Catalog is the external movie database.
type Catalog interface {
	SearchMovies(ctx context.Context, query string, page int) (json.RawMessage, error)
	MovieDetails(ctx context.Context, id string) (json.RawMessage, error)
}

type CatalogService interface {
	// Search passes the catalog's result page through unchanged.
	Search(ctx context.Context, query string, page int) (json.RawMessage, error)
	Details(ctx context.Context, id string) (json.RawMessage, error)
}

type catalogService struct {
	catalog Catalog
	log     *zap.Logger
}

func NewCatalogService(catalog Catalog, log *zap.Logger) CatalogService {
	return &catalogService{
		catalog: catalog,
		log:     log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) Search(ctx context.Context, query string, page int) (json.RawMessage, error) {
	// Only an absent query is rejected; whitespace goes to the catalog as given.
	if query == "" {
		return nil, utils.NewValidationError("Missing query", nil)
	}
	if page < 1 {
		page = 1
	}

	result, err := s.catalog.SearchMovies(ctx, query, page)
	if err != nil {
		s.log.Warn("Catalog search failed",
			zap.Error(err),
			zap.String("query", query),
			zap.Int("page", page),
		)
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	s.log.Debug("Catalog search",
		zap.String("query", query),
		zap.Int("page", page),
		zap.Int("bytes", len(result)),
	)
	return result, nil
}

func (s *catalogService) Details(ctx context.Context, id string) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, utils.NewValidationError("Movie ID is required", nil)
	}

	result, err := s.catalog.MovieDetails(ctx, id)
	if err != nil {
		s.log.Warn("Catalog details failed", zap.Error(err), zap.String("movie_id", id))
		return nil, fmt.Errorf("movie %s: %w", id, err)
	}
	return result, nil
}
