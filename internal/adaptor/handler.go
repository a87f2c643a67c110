package adaptor

import (
	"movie-review/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Catalog *CatalogHandler
	Review  *ReviewHandler
	Post    *PostHandler
	Health  *HealthHandler
}

func NewHandler(service *usecase.Service, storeDriver string, log *zap.Logger) *Handler {
	return &Handler{
		Catalog: NewCatalogHandler(service.Catalog, log),
		Review:  NewReviewHandler(service.Review, log),
		Post:    NewPostHandler(service.Post, log),
		Health:  NewHealthHandler(storeDriver),
	}
}
