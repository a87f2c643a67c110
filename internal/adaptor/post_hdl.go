package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PostHandler struct {
	service usecase.PostService
	log     *zap.Logger
}

func NewPostHandler(service usecase.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{
		service: service,
		log:     log.With(zap.String("handler", "post")),
	}
}

// ListPosts handles GET /api/posts?limit=n (public)
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit := utils.ClampLimit(r.URL.Query().Get("limit"), usecase.DefaultPostLimit, usecase.MaxPostLimit)

	posts, err := h.service.ListPosts(r.Context(), limit)
	if err != nil {
		respondError(w, h.log, err, "list posts", "Failed to fetch posts")
		return
	}

	utils.ResponseSuccess(w, posts)
}

// GetPost handles GET /api/posts/{id} (public)
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "get post", "Failed to fetch post")
		return
	}

	utils.ResponseSuccess(w, post)
}

// CreatePost handles POST /api/posts (protected)
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseAppError(w, utils.NewError(utils.ErrUnauthenticated, "No token provided"))
		return
	}

	var req request.CreatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, h.log, err, "create post", "Failed to create post")
		return
	}

	post, err := h.service.CreatePost(r.Context(), identity, &req)
	if err != nil {
		respondError(w, h.log, err, "create post", "Failed to create post")
		return
	}

	utils.ResponseCreated(w, post)
}
