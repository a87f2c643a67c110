package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const reviewColumns = `id, movie_id, movie_title, rating, text, uid, user_email, created_at, updated_at`

type postgresReviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPostgresReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &postgresReviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review"), zap.String("driver", "postgres")),
	}
}

func (r *postgresReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, movie_id, movie_title, rating, text, uid, user_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING created_at, updated_at
	`

	id := uuid.NewString()
	err := r.db.QueryRow(ctx, query,
		id,
		review.MovieID,
		review.MovieTitle,
		review.Rating,
		review.Text,
		review.UID,
		review.UserEmail,
	).Scan(&review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("uid", review.UID),
			zap.String("movie_id", review.MovieID),
		)
		return fmt.Errorf("create review for movie %s by user %s: %w: %w",
			review.MovieID, review.UID, utils.ErrStorageUnavailable, err)
	}

	review.ID = id
	review.Version = review.UpdatedAt
	return nil
}

func (r *postgresReviewRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID", zap.Error(err), zap.String("review_id", id))
		return nil, fmt.Errorf("find review by ID %s: %w: %w", id, utils.ErrStorageUnavailable, err)
	}

	return review, nil
}

func (r *postgresReviewRepository) FindByMovieID(ctx context.Context, movieID string) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE movie_id = $1`

	reviews, err := r.list(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("find reviews by movie ID %s: %w: %w", movieID, utils.ErrStorageUnavailable, err)
	}
	return reviews, nil
}

func (r *postgresReviewRepository) FindByUID(ctx context.Context, uid string) ([]*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE uid = $1`

	reviews, err := r.list(ctx, query, uid)
	if err != nil {
		r.log.Error("Failed to find reviews by uid", zap.Error(err), zap.String("uid", uid))
		return nil, fmt.Errorf("find reviews by uid %s: %w: %w", uid, utils.ErrStorageUnavailable, err)
	}
	return reviews, nil
}

// Update keeps owner equality and the read version in the WHERE clause so the
// ownership check and the write cannot be split by a concurrent writer.
func (r *postgresReviewRepository) Update(ctx context.Context, current *entity.Review, patch entity.ReviewPatch) (*entity.Review, error) {
	query := `
		UPDATE reviews
		SET rating = COALESCE($4::integer, rating),
			text = COALESCE($5::text, text),
			updated_at = GREATEST(now(), updated_at + interval '1 microsecond')
		WHERE id = $1 AND uid = $2 AND updated_at = $3
		RETURNING ` + reviewColumns

	updated, err := scanReview(r.db.QueryRow(ctx, query,
		current.ID,
		current.UID,
		current.Version,
		patch.Rating,
		patch.Text,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.lostPrecondition(ctx, current.ID, "update")
	}
	if err != nil {
		r.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", current.ID))
		return nil, fmt.Errorf("update review %s: %w: %w", current.ID, utils.ErrStorageUnavailable, err)
	}

	return updated, nil
}

func (r *postgresReviewRepository) Delete(ctx context.Context, current *entity.Review) error {
	query := `DELETE FROM reviews WHERE id = $1 AND uid = $2 AND updated_at = $3`

	result, err := r.db.Exec(ctx, query, current.ID, current.UID, current.Version)
	if err != nil {
		r.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", current.ID))
		return fmt.Errorf("delete review %s: %w: %w", current.ID, utils.ErrStorageUnavailable, err)
	}

	if result.RowsAffected() == 0 {
		return r.lostPrecondition(ctx, current.ID, "delete")
	}

	r.log.Info("Review deleted", zap.String("review_id", current.ID))
	return nil
}

// lostPrecondition tells a vanished row apart from one that changed underneath us.
func (r *postgresReviewRepository) lostPrecondition(ctx context.Context, id, op string) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%s review %s: %w", op, id, utils.ErrNotFound)
	}
	return fmt.Errorf("%s review %s: modified concurrently: %w", op, id, utils.ErrConflict)
}

func (r *postgresReviewRepository) list(ctx context.Context, query string, arg string) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*entity.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.MovieID,
		&review.MovieTitle,
		&review.Rating,
		&review.Text,
		&review.UID,
		&review.UserEmail,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	review.Version = review.UpdatedAt
	return &review, nil
}
