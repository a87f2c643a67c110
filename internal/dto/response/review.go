package response

import (
	"time"

	"movie-review/internal/data/entity"
)

type ReviewResponse struct {
	ID         string     `json:"id"`
	MovieID    string     `json:"movieId"`
	MovieTitle string     `json:"movieTitle"`
	Rating     int        `json:"rating"`
	Text       string     `json:"text"`
	UID        string     `json:"uid"`
	UserEmail  string     `json:"userEmail"`
	CreatedAt  *time.Time `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt"`
}

// Helper converter
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		MovieID:    review.MovieID,
		MovieTitle: review.MovieTitle,
		Rating:     review.Rating,
		Text:       review.Text,
		UID:        review.UID,
		UserEmail:  review.UserEmail,
		CreatedAt:  timestamp(review.CreatedAt),
		UpdatedAt:  timestamp(review.UpdatedAt),
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, ReviewToResponse(review))
	}
	return out
}

// timestamp renders a missing time as null.
func timestamp(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}
