package repository

import (
	"context"
	"testing"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMonotonicClock_NeverRepeats(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &monotonicClock{now: func() time.Time { return fixed }}

	first := clock.Next()
	second := clock.Next()
	third := clock.Next()

	assert.Equal(t, fixed, first)
	assert.True(t, second.After(first))
	assert.True(t, third.After(second))
}

func TestMemoryReviewRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReviewRepository(nil, zap.NewNop())

	review := &entity.Review{MovieID: "42", Rating: 4, Text: "Great", UID: "U1"}
	require.NoError(t, repo.Create(ctx, review))

	assert.NotEmpty(t, review.ID)
	assert.False(t, review.CreatedAt.IsZero())
	assert.Equal(t, review.CreatedAt, review.UpdatedAt)

	found, err := repo.FindByID(ctx, review.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *review, *found)

	missing, err := repo.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryReviewRepository_Filters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReviewRepository(nil, zap.NewNop())

	require.NoError(t, repo.Create(ctx, &entity.Review{MovieID: "42", Rating: 4, UID: "U1"}))
	require.NoError(t, repo.Create(ctx, &entity.Review{MovieID: "42", Rating: 2, UID: "U2"}))
	require.NoError(t, repo.Create(ctx, &entity.Review{MovieID: "7", Rating: 5, UID: "U1"}))

	byMovie, err := repo.FindByMovieID(ctx, "42")
	require.NoError(t, err)
	assert.Len(t, byMovie, 2)

	byUser, err := repo.FindByUID(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
	for _, r := range byUser {
		assert.Equal(t, "U1", r.UID)
	}

	none, err := repo.FindByMovieID(ctx, "999")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryReviewRepository_UpdatePreconditions(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReviewRepository(nil, zap.NewNop())

	review := &entity.Review{MovieID: "42", Rating: 4, Text: "Great", UID: "U1"}
	require.NoError(t, repo.Create(ctx, review))
	stale := *review

	updated, err := repo.Update(ctx, review, entity.ReviewPatch{Text: utils.StringToPointer("")})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "", updated.Text)
	assert.True(t, updated.UpdatedAt.After(review.UpdatedAt))

	// The stale copy no longer matches the stored version.
	_, err = repo.Update(ctx, &stale, entity.ReviewPatch{Rating: utils.IntToPointer(1)})
	assert.ErrorIs(t, err, utils.ErrConflict)

	err = repo.Delete(ctx, &stale)
	assert.ErrorIs(t, err, utils.ErrConflict)

	require.NoError(t, repo.Delete(ctx, updated))

	err = repo.Delete(ctx, updated)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestMemoryPostRepository_FindRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPostRepository(nil, zap.NewNop())

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &entity.Post{Title: title, AuthorUID: "U1"}))
	}

	posts, err := repo.FindRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "third", posts[0].Title)
	assert.Equal(t, "second", posts[1].Title)
}
