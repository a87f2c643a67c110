package repository

import (
	"context"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestorePostRepository struct {
	db  database.DocumentClient
	log *zap.Logger
}

func NewFirestorePostRepository(db database.DocumentClient, log *zap.Logger) PostRepository {
	return &firestorePostRepository{
		db:  db,
		log: log.With(zap.String("repository", "post"), zap.String("driver", "firestore")),
	}
}

func (r *firestorePostRepository) Create(ctx context.Context, post *entity.Post) error {
	docRef := r.db.Collection(postsCollection).NewDoc()

	result, err := r.db.CreateDoc(ctx, docRef, post)
	if err != nil {
		r.log.Error("Failed to create post", zap.Error(err), zap.String("author_uid", post.AuthorUID))
		return storeError("create post", err)
	}

	post.ID = docRef.ID
	post.CreatedAt = result.UpdateTime
	post.UpdatedAt = result.UpdateTime
	return nil
}

func (r *firestorePostRepository) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	snap, err := r.db.GetDoc(ctx, r.db.Collection(postsCollection).Doc(id))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		r.log.Error("Failed to find post by ID", zap.Error(err), zap.String("post_id", id))
		return nil, storeError(fmt.Sprintf("find post %s", id), err)
	}

	if !snap.Exists() {
		return nil, nil
	}

	return postFromSnapshot(snap)
}

func (r *firestorePostRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Post, error) {
	query := r.db.Collection(postsCollection).
		OrderBy(createdAtFieldPath, firestore.Desc).
		Limit(limit)

	posts := make([]*entity.Post, 0, limit)
	err := r.db.QueryDocs(ctx, query, func(snap *firestore.DocumentSnapshot) error {
		post, err := postFromSnapshot(snap)
		if err != nil {
			r.log.Warn("Skipping unreadable post document", zap.Error(err), zap.String("post_id", snap.Ref.ID))
			return nil
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		r.log.Error("Failed to find recent posts", zap.Error(err), zap.Int("limit", limit))
		return nil, storeError("find recent posts", err)
	}

	return posts, nil
}

func postFromSnapshot(snap *firestore.DocumentSnapshot) (*entity.Post, error) {
	post := &entity.Post{}
	if err := snap.DataTo(post); err != nil {
		return nil, fmt.Errorf("decode post %s: %w", snap.Ref.ID, err)
	}
	post.ID = snap.Ref.ID
	return post, nil
}
