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

const (
	movieIDFieldPath   = "movieId"
	uidFieldPath       = "uid"
	ratingFieldPath    = "rating"
	textFieldPath      = "text"
	createdAtFieldPath = "createdAt"
	updatedAtFieldPath = "updatedAt"
)

type firestoreReviewRepository struct {
	db  database.DocumentClient
	log *zap.Logger
}

func NewFirestoreReviewRepository(db database.DocumentClient, log *zap.Logger) ReviewRepository {
	return &firestoreReviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review"), zap.String("driver", "firestore")),
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	docRef := r.db.Collection(reviewsCollection).NewDoc()

	result, err := r.db.CreateDoc(ctx, docRef, review)
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("uid", review.UID),
			zap.String("movie_id", review.MovieID),
		)
		return storeError(fmt.Sprintf("create review for movie %s", review.MovieID), err)
	}

	// Server timestamps resolve to the commit time, so the written document is known
	// without reading it back.
	review.ID = docRef.ID
	review.CreatedAt = result.UpdateTime
	review.UpdatedAt = result.UpdateTime
	review.Version = result.UpdateTime
	return nil
}

func (r *firestoreReviewRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	snap, err := r.db.GetDoc(ctx, r.db.Collection(reviewsCollection).Doc(id))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		r.log.Error("Failed to find review by ID", zap.Error(err), zap.String("review_id", id))
		return nil, storeError(fmt.Sprintf("find review %s", id), err)
	}

	if !snap.Exists() {
		return nil, nil
	}

	return reviewFromSnapshot(snap)
}

func (r *firestoreReviewRepository) FindByMovieID(ctx context.Context, movieID string) ([]*entity.Review, error) {
	query := r.db.Collection(reviewsCollection).Where(movieIDFieldPath, "==", movieID)

	reviews, err := r.collect(ctx, query)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID", zap.Error(err), zap.String("movie_id", movieID))
		return nil, storeError(fmt.Sprintf("find reviews by movie %s", movieID), err)
	}

	r.log.Debug("Reviews fetched by movie", zap.String("movie_id", movieID), zap.Int("count", len(reviews)))
	return reviews, nil
}

func (r *firestoreReviewRepository) FindByUID(ctx context.Context, uid string) ([]*entity.Review, error) {
	query := r.db.Collection(reviewsCollection).Where(uidFieldPath, "==", uid)

	reviews, err := r.collect(ctx, query)
	if err != nil {
		r.log.Error("Failed to find reviews by uid", zap.Error(err), zap.String("uid", uid))
		return nil, storeError(fmt.Sprintf("find reviews by uid %s", uid), err)
	}

	return reviews, nil
}

func (r *firestoreReviewRepository) Update(ctx context.Context, current *entity.Review, patch entity.ReviewPatch) (*entity.Review, error) {
	updates := []firestore.Update{}

	if patch.Rating != nil {
		updates = append(updates, firestore.Update{Path: ratingFieldPath, Value: *patch.Rating})
	}
	if patch.Text != nil {
		updates = append(updates, firestore.Update{Path: textFieldPath, Value: *patch.Text})
	}
	updates = append(updates, firestore.Update{Path: updatedAtFieldPath, Value: firestore.ServerTimestamp})

	docRef := r.db.Collection(reviewsCollection).Doc(current.ID)
	result, err := r.db.UpdateDoc(ctx, docRef, updates, writePrecondition(current))
	if err != nil {
		r.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", current.ID))
		return nil, storeError(fmt.Sprintf("update review %s", current.ID), err)
	}

	updated := *current
	patch.Apply(&updated)
	updated.UpdatedAt = result.UpdateTime
	updated.Version = result.UpdateTime
	return &updated, nil
}

func (r *firestoreReviewRepository) Delete(ctx context.Context, current *entity.Review) error {
	docRef := r.db.Collection(reviewsCollection).Doc(current.ID)

	if _, err := r.db.DeleteDoc(ctx, docRef, writePrecondition(current)); err != nil {
		r.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", current.ID))
		return storeError(fmt.Sprintf("delete review %s", current.ID), err)
	}

	r.log.Info("Review deleted", zap.String("review_id", current.ID))
	return nil
}

func (r *firestoreReviewRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Review, error) {
	reviews := make([]*entity.Review, 0)
	err := r.db.QueryDocs(ctx, query, func(snap *firestore.DocumentSnapshot) error {
		review, err := reviewFromSnapshot(snap)
		if err != nil {
			// A malformed document should not hide the rest of the listing.
			r.log.Warn("Skipping unreadable review document", zap.Error(err), zap.String("review_id", snap.Ref.ID))
			return nil
		}
		reviews = append(reviews, review)
		return nil
	})
	return reviews, err
}

// writePrecondition pins a write to the version the ownership check was made against.
func writePrecondition(current *entity.Review) firestore.Precondition {
	if current.Version.IsZero() {
		return firestore.Exists
	}
	return firestore.LastUpdateTime(current.Version)
}

func reviewFromSnapshot(snap *firestore.DocumentSnapshot) (*entity.Review, error) {
	review := &entity.Review{}
	if err := snap.DataTo(review); err != nil {
		return nil, fmt.Errorf("decode review %s: %w", snap.Ref.ID, err)
	}
	review.ID = snap.Ref.ID
	review.Version = snap.UpdateTime
	return review, nil
}
