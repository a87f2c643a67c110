package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	updateReviewSQL = `(?s)UPDATE reviews.*` +
		`SET rating = COALESCE\(\$4::integer, rating\).*` +
		`text = COALESCE\(\$5::text, text\).*` +
		`updated_at = GREATEST\(now\(\), updated_at \+ interval '1 microsecond'\).*` +
		`WHERE id = \$1 AND uid = \$2 AND updated_at = \$3`
	deleteReviewSQL = `DELETE FROM reviews WHERE id = \$1 AND uid = \$2 AND updated_at = \$3`
	findReviewSQL   = `SELECT .* FROM reviews WHERE id = \$1`
)

var reviewRowColumns = []string{"id", "movie_id", "movie_title", "rating", "text", "uid", "user_email", "created_at", "updated_at"}

func newMockReviewRepo(t *testing.T) (pgxmock.PgxPoolIface, ReviewRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewPostgresReviewRepository(mock, zap.NewNop())
}

func storedReview(version time.Time) *entity.Review {
	return &entity.Review{
		ID:        "r1",
		MovieID:   "42",
		Rating:    4,
		Text:      "Great",
		UID:       "U1",
		UserEmail: "u1@example.com",
		CreatedAt: version,
		UpdatedAt: version,
		Version:   version,
	}
}

func reviewRow(mock pgxmock.PgxPoolIface, r *entity.Review) *pgxmock.Rows {
	return mock.NewRows(reviewRowColumns).
		AddRow(r.ID, r.MovieID, r.MovieTitle, r.Rating, r.Text, r.UID, r.UserEmail, r.CreatedAt, r.UpdatedAt)
}

func TestPostgresReviewRepository_Create(t *testing.T) {
	mock, repo := newMockReviewRepo(t)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO reviews`).
		WithArgs(pgxmock.AnyArg(), "42", "Example", 4, "Great", "U1", "u1@example.com").
		WillReturnRows(mock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	review := &entity.Review{MovieID: "42", MovieTitle: "Example", Rating: 4, Text: "Great", UID: "U1", UserEmail: "u1@example.com"}
	require.NoError(t, repo.Create(context.Background(), review))

	assert.NotEmpty(t, review.ID)
	assert.Equal(t, now, review.CreatedAt)
	assert.Equal(t, now, review.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReviewRepository_Update(t *testing.T) {
	version := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	newRating := 5
	newText := ""

	tests := []struct {
		name    string
		patch   entity.ReviewPatch
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
		check   func(t *testing.T, updated *entity.Review)
	}{
		{
			name:  "rating_only_sends_null_text",
			patch: entity.ReviewPatch{Rating: &newRating},
			setup: func(mock pgxmock.PgxPoolIface) {
				row := storedReview(version)
				row.Rating = 5
				row.UpdatedAt = version.Add(time.Second)
				mock.ExpectQuery(updateReviewSQL).
					WithArgs("r1", "U1", version, &newRating, (*string)(nil)).
					WillReturnRows(reviewRow(mock, row))
			},
			check: func(t *testing.T, updated *entity.Review) {
				assert.Equal(t, 5, updated.Rating)
				assert.Equal(t, "Great", updated.Text)
				assert.True(t, updated.UpdatedAt.After(version))
				assert.Equal(t, updated.UpdatedAt, updated.Version)
			},
		},
		{
			name:  "empty_text_sends_null_rating",
			patch: entity.ReviewPatch{Text: &newText},
			setup: func(mock pgxmock.PgxPoolIface) {
				row := storedReview(version)
				row.Text = ""
				row.UpdatedAt = version.Add(time.Second)
				mock.ExpectQuery(updateReviewSQL).
					WithArgs("r1", "U1", version, (*int)(nil), &newText).
					WillReturnRows(reviewRow(mock, row))
			},
			check: func(t *testing.T, updated *entity.Review) {
				assert.Equal(t, 4, updated.Rating)
				assert.Equal(t, "", updated.Text)
			},
		},
		{
			name:  "row_gone_is_not_found",
			patch: entity.ReviewPatch{Rating: &newRating},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(updateReviewSQL).
					WithArgs("r1", "U1", version, &newRating, (*string)(nil)).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery(findReviewSQL).
					WithArgs("r1").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: utils.ErrNotFound,
		},
		{
			name:  "row_changed_is_conflict",
			patch: entity.ReviewPatch{Rating: &newRating},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(updateReviewSQL).
					WithArgs("r1", "U1", version, &newRating, (*string)(nil)).
					WillReturnError(pgx.ErrNoRows)
				changed := storedReview(version)
				changed.UpdatedAt = version.Add(time.Minute)
				mock.ExpectQuery(findReviewSQL).
					WithArgs("r1").
					WillReturnRows(reviewRow(mock, changed))
			},
			wantErr: utils.ErrConflict,
		},
		{
			name:  "driver_failure_is_storage_unavailable",
			patch: entity.ReviewPatch{Rating: &newRating},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(updateReviewSQL).
					WithArgs("r1", "U1", version, &newRating, (*string)(nil)).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: utils.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMockReviewRepo(t)
			tt.setup(mock)

			updated, err := repo.Update(context.Background(), storedReview(version), tt.patch)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				tt.check(t, updated)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresReviewRepository_Delete(t *testing.T) {
	version := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "deleted",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deleteReviewSQL).
					WithArgs("r1", "U1", version).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "row_gone_is_not_found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deleteReviewSQL).
					WithArgs("r1", "U1", version).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
				mock.ExpectQuery(findReviewSQL).
					WithArgs("r1").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: utils.ErrNotFound,
		},
		{
			name: "row_changed_is_conflict",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(deleteReviewSQL).
					WithArgs("r1", "U1", version).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
				changed := storedReview(version)
				changed.Rating = 1
				changed.UpdatedAt = version.Add(time.Minute)
				mock.ExpectQuery(findReviewSQL).
					WithArgs("r1").
					WillReturnRows(reviewRow(mock, changed))
			},
			wantErr: utils.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMockReviewRepo(t)
			tt.setup(mock)

			err := repo.Delete(context.Background(), storedReview(version))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresReviewRepository_FindByUID(t *testing.T) {
	mock, repo := newMockReviewRepo(t)
	version := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reviews WHERE uid = $1`)).
		WithArgs("U1").
		WillReturnRows(reviewRow(mock, storedReview(version)))

	reviews, err := repo.FindByUID(context.Background(), "U1")

	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "U1", reviews[0].UID)
	assert.Equal(t, version, reviews[0].Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_FindRecent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	repo := NewPostgresPostRepository(mock, zap.NewNop())

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM posts ORDER BY created_at DESC LIMIT $1`)).
		WithArgs(2).
		WillReturnRows(mock.NewRows([]string{"id", "title", "excerpt", "content", "author_uid", "author_email", "created_at", "updated_at"}).
			AddRow("p2", "Newer", "", "", "U1", "", created.Add(time.Hour), created.Add(time.Hour)).
			AddRow("p1", "Older", "", "", "U1", "", created, created))

	posts, err := repo.FindRecent(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
