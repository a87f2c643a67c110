package usecase

import (
	"movie-review/internal/data/repository"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog CatalogService
	Review  ReviewService
	Post    PostService
}

func NewService(repo *repository.Repository, catalog Catalog, log *zap.Logger) *Service {
	return &Service{
		Catalog: NewCatalogService(catalog, log),
		Review:  NewReviewService(repo, log),
		Post:    NewPostService(repo, log),
	}
}

// storeNotInitialized is returned by every store-backed operation when the
// driver failed to open at startup.
func storeNotInitialized(driver string) error {
	name := driver
	switch driver {
	case utils.StoreFirestore:
		name = "Firestore"
	case utils.StorePostgres:
		name = "Postgres"
	}
	return utils.NewError(utils.ErrStorageUnavailable, "Server misconfiguration: "+name+" not initialized").
		WithCause(utils.ErrStoreNotInitialized)
}
