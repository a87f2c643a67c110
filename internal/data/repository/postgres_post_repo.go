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

const postColumns = `id, title, excerpt, content, author_uid, author_email, created_at, updated_at`

type postgresPostRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPostgresPostRepository(db database.PgxIface, log *zap.Logger) PostRepository {
	return &postgresPostRepository{
		db:  db,
		log: log.With(zap.String("repository", "post"), zap.String("driver", "postgres")),
	}
}

func (r *postgresPostRepository) Create(ctx context.Context, post *entity.Post) error {
	query := `
		INSERT INTO posts (id, title, excerpt, content, author_uid, author_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at
	`

	id := uuid.NewString()
	err := r.db.QueryRow(ctx, query,
		id,
		post.Title,
		post.Excerpt,
		post.Content,
		post.AuthorUID,
		post.AuthorEmail,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create post", zap.Error(err), zap.String("author_uid", post.AuthorUID))
		return fmt.Errorf("create post: %w: %w", utils.ErrStorageUnavailable, err)
	}

	post.ID = id
	return nil
}

func (r *postgresPostRepository) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find post by ID", zap.Error(err), zap.String("post_id", id))
		return nil, fmt.Errorf("find post by ID %s: %w: %w", id, utils.ErrStorageUnavailable, err)
	}
	return post, nil
}

func (r *postgresPostRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find recent posts", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("find recent posts: %w: %w", utils.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	posts := make([]*entity.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			r.log.Error("Failed to scan post row", zap.Error(err))
			return nil, fmt.Errorf("scan post row: %w: %w", utils.ErrStorageUnavailable, err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w: %w", utils.ErrStorageUnavailable, err)
	}
	return posts, nil
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	var post entity.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Excerpt,
		&post.Content,
		&post.AuthorUID,
		&post.AuthorEmail,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
