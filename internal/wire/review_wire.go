package wire

import (
	"net/http"

	"movie-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	auth func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/reviews/movie/{movieId} - reviews for a movie, newest first
	r.Get("/api/reviews/movie/{movieId}", reviewHandler.GetMovieReviews)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		// POST /api/reviews - create review as the caller
		r.Post("/api/reviews", reviewHandler.CreateReview)

		// PUT /api/reviews/{id} - update review (owner only)
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)

		// DELETE /api/reviews/{id} - delete review (owner only)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)

		// GET /api/my-reviews - the caller's own reviews
		r.Get("/api/my-reviews", reviewHandler.GetMyReviews)
	})
}
