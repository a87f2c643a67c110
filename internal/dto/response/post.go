package response

import (
	"time"

	"movie-review/internal/data/entity"
)

type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	AuthorUID   string     `json:"authorUid"`
	AuthorEmail string     `json:"authorEmail"`
	CreatedAt   *time.Time `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

func PostToResponse(post *entity.Post) PostResponse {
	return PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Excerpt:     post.Excerpt,
		Content:     post.Content,
		AuthorUID:   post.AuthorUID,
		AuthorEmail: post.AuthorEmail,
		CreatedAt:   timestamp(post.CreatedAt),
		UpdatedAt:   timestamp(post.UpdatedAt),
	}
}

func PostsToResponse(posts []*entity.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, PostToResponse(post))
	}
	return out
}
