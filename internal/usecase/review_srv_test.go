package usecase

import (
	"context"
	"testing"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	alice = entity.Identity{UID: "U1", Email: "u1@example.com"}
	bob   = entity.Identity{UID: "U2", Email: "u2@example.com"}
)

func newReviewService(t *testing.T) ReviewService {
	t.Helper()
	return NewReviewService(repository.NewMemoryRepository(zap.NewNop()), zap.NewNop())
}

func createReq(movieID string, rating int, text string) *request.CreateReviewRequest {
	return &request.CreateReviewRequest{
		MovieID:    request.MovieID(movieID),
		MovieTitle: "Example",
		Rating:     utils.IntToPointer(rating),
		Text:       text,
	}
}

func TestCreateReview(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, alice, createReq("42", 4, "great"))
	require.NoError(t, err)

	assert.NotEmpty(t, review.ID)
	assert.Equal(t, "42", review.MovieID)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "U1", review.UID)
	assert.Equal(t, "u1@example.com", review.UserEmail)
	require.NotNil(t, review.CreatedAt)
	require.NotNil(t, review.UpdatedAt)
	assert.Equal(t, *review.CreatedAt, *review.UpdatedAt)
}

func TestCreateReview_Validation(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *request.CreateReviewRequest
		message string
	}{
		{"missing_movie", &request.CreateReviewRequest{Rating: utils.IntToPointer(3)}, "movieId and rating required"},
		{"missing_rating", &request.CreateReviewRequest{MovieID: "42"}, "movieId and rating required"},
		{"rating_too_high", createReq("42", 6, ""), "Validation failed"},
		{"rating_zero", createReq("42", 0, ""), "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReview(ctx, alice, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, utils.ErrBadRequest)

			var appErr *utils.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestCreateReview_RequiresIdentity(t *testing.T) {
	_, err := newReviewService(t).CreateReview(context.Background(), entity.Identity{}, createReq("42", 4, ""))
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
}

func TestGetMovieReviews(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	first, err := svc.CreateReview(ctx, alice, createReq("42", 4, "first"))
	require.NoError(t, err)
	second, err := svc.CreateReview(ctx, bob, createReq("42", 2, "second"))
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, bob, createReq("7", 5, "other movie"))
	require.NoError(t, err)

	reviews, err := svc.GetMovieReviews(ctx, "42")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, second.ID, reviews[0].ID)
	assert.Equal(t, first.ID, reviews[1].ID)

	empty, err := svc.GetMovieReviews(ctx, "999")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGetUserReviews(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, alice, createReq("42", 4, ""))
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, alice, createReq("7", 3, ""))
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, bob, createReq("42", 1, ""))
	require.NoError(t, err)

	reviews, err := svc.GetUserReviews(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	for _, r := range reviews {
		assert.Equal(t, "U1", r.UID)
	}
}

func TestUpdateReview(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, alice, createReq("42", 4, "great"))
	require.NoError(t, err)

	t.Run("rating_only_keeps_text", func(t *testing.T) {
		updated, err := svc.UpdateReview(ctx, created.ID, alice, &request.UpdateReviewRequest{Rating: utils.IntToPointer(5)})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
		assert.Equal(t, "great", updated.Text)
		assert.True(t, updated.UpdatedAt.After(*created.UpdatedAt))
		assert.Equal(t, *created.CreatedAt, *updated.CreatedAt)
	})

	t.Run("empty_text_overwrites", func(t *testing.T) {
		updated, err := svc.UpdateReview(ctx, created.ID, alice, &request.UpdateReviewRequest{Text: utils.StringToPointer("")})
		require.NoError(t, err)
		assert.Equal(t, "", updated.Text)
		assert.Equal(t, 5, updated.Rating)
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		_, err := svc.UpdateReview(ctx, created.ID, bob, &request.UpdateReviewRequest{Rating: utils.IntToPointer(1)})
		assert.ErrorIs(t, err, utils.ErrForbidden)

		reviews, err := svc.GetMovieReviews(ctx, "42")
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, 5, reviews[0].Rating)
	})

	t.Run("missing_review", func(t *testing.T) {
		_, err := svc.UpdateReview(ctx, "nope", alice, &request.UpdateReviewRequest{Rating: utils.IntToPointer(1)})
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("invalid_rating", func(t *testing.T) {
		_, err := svc.UpdateReview(ctx, created.ID, alice, &request.UpdateReviewRequest{Rating: utils.IntToPointer(9)})
		assert.ErrorIs(t, err, utils.ErrBadRequest)
	})
}

func TestDeleteReview(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	created, err := svc.CreateReview(ctx, alice, createReq("42", 4, ""))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteReview(ctx, created.ID, bob), utils.ErrForbidden)
	require.NoError(t, svc.DeleteReview(ctx, created.ID, alice))
	assert.ErrorIs(t, svc.DeleteReview(ctx, created.ID, alice), utils.ErrNotFound)

	reviews, err := svc.GetMovieReviews(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewService_StoreNotInitialized(t *testing.T) {
	svc := NewReviewService(repository.Unavailable(utils.StoreFirestore), zap.NewNop())
	ctx := context.Background()

	_, err := svc.GetMovieReviews(ctx, "42")
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrStorageUnavailable)
	assert.ErrorIs(t, err, utils.ErrStoreNotInitialized)

	var appErr *utils.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Server misconfiguration: Firestore not initialized", appErr.Message)

	_, err = svc.CreateReview(ctx, alice, createReq("42", 4, ""))
	assert.ErrorIs(t, err, utils.ErrStorageUnavailable)
	assert.ErrorIs(t, svc.DeleteReview(ctx, "r1", alice), utils.ErrStorageUnavailable)
}

func TestSortNewestFirst_MissingTimestampLast(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reviews := []*entity.Review{
		{ID: "none"},
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(time.Hour)},
		{ID: "none2"},
	}

	sortNewestFirst(reviews)

	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"new", "old", "none", "none2"}, ids)
}
