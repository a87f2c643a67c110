package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	// Public endpoints
	GetMovieReviews(ctx context.Context, movieID string) ([]response.ReviewResponse, error)

	// Authenticated endpoints
	GetUserReviews(ctx context.Context, identity entity.Identity) ([]response.ReviewResponse, error)
	CreateReview(ctx context.Context, identity entity.Identity, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID string, identity entity.Identity, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID string, identity entity.Identity) error
}

type reviewService struct {
	repo   repository.ReviewRepository
	driver string
	log    *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:   repo.Review,
		driver: repo.Driver,
		log:    log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetMovieReviews(ctx context.Context, movieID string) ([]response.ReviewResponse, error) {
	if s.repo == nil {
		return nil, storeNotInitialized(s.driver)
	}

	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return nil, utils.NewValidationError("Movie ID is required", nil)
	}

	reviews, err := s.repo.FindByMovieID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get movie reviews", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie reviews: %w", err)
	}

	sortNewestFirst(reviews)

	s.log.Debug("Movie reviews retrieved",
		zap.String("movie_id", movieID),
		zap.Int("count", len(reviews)),
	)
	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, identity entity.Identity) ([]response.ReviewResponse, error) {
	if s.repo == nil {
		return nil, storeNotInitialized(s.driver)
	}
	if identity.UID == "" {
		return nil, utils.NewError(utils.ErrUnauthenticated, "No token provided")
	}

	reviews, err := s.repo.FindByUID(ctx, identity.UID)
	if err != nil {
		s.log.Error("Failed to get user reviews", zap.Error(err), zap.String("uid", identity.UID))
		return nil, fmt.Errorf("get user reviews: %w", err)
	}

	s.log.Debug("User reviews retrieved",
		zap.String("uid", identity.UID),
		zap.Int("count", len(reviews)),
	)
	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) CreateReview(ctx context.Context, identity entity.Identity, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if s.repo == nil {
		return nil, storeNotInitialized(s.driver)
	}
	if identity.UID == "" {
		return nil, utils.NewError(utils.ErrUnauthenticated, "No token provided")
	}

	movieID := strings.TrimSpace(string(req.MovieID))
	if movieID == "" || req.Rating == nil {
		return nil, utils.NewValidationError("movieId and rating required", nil)
	}

	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	review := &entity.Review{
		MovieID:    movieID,
		MovieTitle: req.MovieTitle,
		Rating:     *req.Rating,
		Text:       req.Text,
		UID:        identity.UID,
		UserEmail:  identity.Email,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("uid", identity.UID),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID),
		zap.String("uid", identity.UID),
		zap.String("movie_id", movieID),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, identity entity.Identity, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if s.repo == nil {
		return nil, storeNotInitialized(s.driver)
	}

	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	current, err := s.ownedReview(ctx, reviewID, identity)
	if err != nil {
		return nil, err
	}

	patch := entity.ReviewPatch{Rating: req.Rating, Text: req.Text}
	updated, err := s.repo.Update(ctx, current, patch)
	if err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", reviewID),
			zap.String("uid", identity.UID),
		)
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("uid", identity.UID),
		zap.Bool("rating_changed", req.Rating != nil),
		zap.Bool("text_changed", req.Text != nil),
	)

	resp := response.ReviewToResponse(updated)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string, identity entity.Identity) error {
	if s.repo == nil {
		return storeNotInitialized(s.driver)
	}

	current, err := s.ownedReview(ctx, reviewID, identity)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, current); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("uid", identity.UID),
		zap.String("movie_id", current.MovieID),
	)
	return nil
}

// ==================== HELPER METHODS ====================

// ownedReview fetches the review and checks that identity created it.
func (s *reviewService) ownedReview(ctx context.Context, reviewID string, identity entity.Identity) (*entity.Review, error) {
	if identity.UID == "" {
		return nil, utils.NewError(utils.ErrUnauthenticated, "No token provided")
	}

	reviewID = strings.TrimSpace(reviewID)
	if reviewID == "" {
		return nil, utils.NewError(utils.ErrNotFound, "Review not found")
	}

	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		s.log.Error("Failed to get review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("get review %s: %w", reviewID, err)
	}
	if review == nil {
		return nil, utils.NewError(utils.ErrNotFound, "Review not found")
	}

	if !review.OwnedBy(identity.UID) {
		s.log.Warn("Review ownership check failed",
			zap.String("review_id", reviewID),
			zap.String("uid", identity.UID),
		)
		return nil, utils.NewError(utils.ErrForbidden, "Not authorized")
	}
	return review, nil
}

// sortNewestFirst orders by createdAt descending; a missing createdAt counts as epoch 0.
func sortNewestFirst(reviews []*entity.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		return createdMillis(reviews[i]) > createdMillis(reviews[j])
	})
}

func createdMillis(r *entity.Review) int64 {
	if r.CreatedAt.IsZero() {
		return 0
	}
	return r.CreatedAt.UnixNano() / int64(time.Millisecond)
}
