package repository

import (
	"context"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"go.uber.org/zap"
)

const (
	reviewsCollection = "reviews"
	postsCollection   = "posts"
)

type ReviewRepository interface {
	// Create stores review and fills in ID, CreatedAt, UpdatedAt and Version.
	Create(ctx context.Context, review *entity.Review) error
	// FindByID returns nil, nil when the review does not exist.
	FindByID(ctx context.Context, id string) (*entity.Review, error)
	FindByMovieID(ctx context.Context, movieID string) ([]*entity.Review, error)
	FindByUID(ctx context.Context, uid string) ([]*entity.Review, error)
	// Update applies patch to the stored review only if it is still at current.Version
	// and still owned by current.UID. A lost precondition yields utils.ErrConflict.
	Update(ctx context.Context, current *entity.Review, patch entity.ReviewPatch) (*entity.Review, error)
	// Delete removes the review under the same preconditions as Update.
	Delete(ctx context.Context, current *entity.Review) error
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	// FindByID returns nil, nil when the post does not exist.
	FindByID(ctx context.Context, id string) (*entity.Post, error)
	// FindRecent returns at most limit posts, newest first.
	FindRecent(ctx context.Context, limit int) ([]*entity.Post, error)
}

// Repository bundles the handles for one store driver. Nil members mean the
// store failed to initialize.
type Repository struct {
	Driver string
	Review ReviewRepository
	Post   PostRepository
}

func NewFirestoreRepository(db database.DocumentClient, log *zap.Logger) *Repository {
	return &Repository{
		Driver: "firestore",
		Review: NewFirestoreReviewRepository(db, log),
		Post:   NewFirestorePostRepository(db, log),
	}
}

func NewPostgresRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Driver: "postgres",
		Review: NewPostgresReviewRepository(db, log),
		Post:   NewPostgresPostRepository(db, log),
	}
}

func NewMemoryRepository(log *zap.Logger) *Repository {
	clock := newMonotonicClock()
	return &Repository{
		Driver: "memory",
		Review: NewMemoryReviewRepository(clock, log),
		Post:   NewMemoryPostRepository(clock, log),
	}
}

// Unavailable returns a Repository whose store could not be opened.
func Unavailable(driver string) *Repository {
	return &Repository{Driver: driver}
}
