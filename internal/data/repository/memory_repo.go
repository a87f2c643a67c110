package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// monotonicClock hands out strictly increasing timestamps, standing in for a
// store's commit time.
type monotonicClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func newMonotonicClock() *monotonicClock {
	return &monotonicClock{now: time.Now}
}

func (c *monotonicClock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC()
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

type memoryReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]entity.Review
	clock   *monotonicClock
	log     *zap.Logger
}

func NewMemoryReviewRepository(clock *monotonicClock, log *zap.Logger) ReviewRepository {
	if clock == nil {
		clock = newMonotonicClock()
	}
	return &memoryReviewRepository{
		reviews: make(map[string]entity.Review),
		clock:   clock,
		log:     log.With(zap.String("repository", "review"), zap.String("driver", "memory")),
	}
}

func (r *memoryReviewRepository) Create(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Next()
	review.ID = uuid.NewString()
	review.CreatedAt = now
	review.UpdatedAt = now
	review.Version = now
	r.reviews[review.ID] = *review
	return nil
}

func (r *memoryReviewRepository) FindByID(_ context.Context, id string) (*entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, nil
	}
	return &review, nil
}

func (r *memoryReviewRepository) FindByMovieID(_ context.Context, movieID string) ([]*entity.Review, error) {
	return r.filter(func(review entity.Review) bool { return review.MovieID == movieID }), nil
}

func (r *memoryReviewRepository) FindByUID(_ context.Context, uid string) ([]*entity.Review, error) {
	return r.filter(func(review entity.Review) bool { return review.UID == uid }), nil
}

func (r *memoryReviewRepository) Update(_ context.Context, current *entity.Review, patch entity.ReviewPatch) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.checkPrecondition(current, "update")
	if err != nil {
		return nil, err
	}

	patch.Apply(&stored)
	stored.UpdatedAt = r.clock.Next()
	stored.Version = stored.UpdatedAt
	r.reviews[stored.ID] = stored
	return &stored, nil
}

func (r *memoryReviewRepository) Delete(_ context.Context, current *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.checkPrecondition(current, "delete"); err != nil {
		return err
	}

	delete(r.reviews, current.ID)
	r.log.Info("Review deleted", zap.String("review_id", current.ID))
	return nil
}

// checkPrecondition must be called with mu held.
func (r *memoryReviewRepository) checkPrecondition(current *entity.Review, op string) (entity.Review, error) {
	stored, ok := r.reviews[current.ID]
	if !ok {
		return entity.Review{}, fmt.Errorf("%s review %s: %w", op, current.ID, utils.ErrNotFound)
	}
	if stored.UID != current.UID || !stored.Version.Equal(current.Version) {
		return entity.Review{}, fmt.Errorf("%s review %s: modified concurrently: %w", op, current.ID, utils.ErrConflict)
	}
	return stored, nil
}

func (r *memoryReviewRepository) filter(match func(entity.Review) bool) []*entity.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := make([]*entity.Review, 0)
	for _, review := range r.reviews {
		if match(review) {
			review := review
			reviews = append(reviews, &review)
		}
	}
	return reviews
}

type memoryPostRepository struct {
	mu    sync.RWMutex
	posts map[string]entity.Post
	clock *monotonicClock
	log   *zap.Logger
}

func NewMemoryPostRepository(clock *monotonicClock, log *zap.Logger) PostRepository {
	if clock == nil {
		clock = newMonotonicClock()
	}
	return &memoryPostRepository{
		posts: make(map[string]entity.Post),
		clock: clock,
		log:   log.With(zap.String("repository", "post"), zap.String("driver", "memory")),
	}
}

func (r *memoryPostRepository) Create(_ context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Next()
	post.ID = uuid.NewString()
	post.CreatedAt = now
	post.UpdatedAt = now
	r.posts[post.ID] = *post
	return nil
}

func (r *memoryPostRepository) FindByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return &post, nil
}

func (r *memoryPostRepository) FindRecent(_ context.Context, limit int) ([]*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*entity.Post, 0, len(r.posts))
	for _, post := range r.posts {
		post := post
		posts = append(posts, &post)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	if limit >= 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}
