package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetMovieReviews handles GET /api/reviews/movie/{movieId} (public)
func (h *ReviewHandler) GetMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieId")

	reviews, err := h.service.GetMovieReviews(r.Context(), movieID)
	if err != nil {
		respondError(w, h.log, err, "get movie reviews", "Failed to fetch reviews")
		return
	}

	utils.ResponseSuccess(w, reviews)
}

// GetMyReviews handles GET /api/my-reviews (protected)
func (h *ReviewHandler) GetMyReviews(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseAppError(w, utils.NewError(utils.ErrUnauthenticated, "No token provided"))
		return
	}

	reviews, err := h.service.GetUserReviews(r.Context(), identity)
	if err != nil {
		respondError(w, h.log, err, "get my reviews", "Failed to fetch my reviews")
		return
	}

	utils.ResponseSuccess(w, reviews)
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseAppError(w, utils.NewError(utils.ErrUnauthenticated, "No token provided"))
		return
	}

	var req request.CreateReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, h.log, err, "create review", "Failed to create review")
		return
	}

	review, err := h.service.CreateReview(r.Context(), identity, &req)
	if err != nil {
		respondError(w, h.log, err, "create review", "Failed to create review")
		return
	}

	utils.ResponseCreated(w, review)
}

// UpdateReview handles PUT /api/reviews/{id} (protected, owner only)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseAppError(w, utils.NewError(utils.ErrUnauthenticated, "No token provided"))
		return
	}

	var req request.UpdateReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, h.log, err, "update review", "Failed to update review")
		return
	}

	review, err := h.service.UpdateReview(r.Context(), chi.URLParam(r, "id"), identity, &req)
	if err != nil {
		respondError(w, h.log, err, "update review", "Failed to update review")
		return
	}

	utils.ResponseSuccess(w, review)
}

// DeleteReview handles DELETE /api/reviews/{id} (protected, owner only)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseAppError(w, utils.NewError(utils.ErrUnauthenticated, "No token provided"))
		return
	}

	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id"), identity); err != nil {
		respondError(w, h.log, err, "delete review", "Failed to delete review")
		return
	}

	utils.ResponseMessage(w, "Deleted")
}
