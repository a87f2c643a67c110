package wire

import (
	"net/http"

	"movie-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePost(
	r chi.Router,
	postHandler *adaptor.PostHandler,
	auth func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/posts", postHandler.ListPosts)
	r.Get("/api/posts/{id}", postHandler.GetPost)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/posts", postHandler.CreatePost)
}
